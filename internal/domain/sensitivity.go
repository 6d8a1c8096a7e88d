package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SensitivityParameter represents an assumption to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	Unit        string          `yaml:"unit" json:"unit"`
	Description string          `yaml:"description" json:"description"`
}

// SensitivityPoint is the projection at one swept value
type SensitivityPoint struct {
	Value           decimal.Decimal `json:"value" yaml:"value"`
	NominalPension  int64           `json:"nominalPension" yaml:"nominal_pension"`
	RealPension     int64           `json:"realPension" yaml:"real_pension"`
	ReplacementRate decimal.Decimal `json:"replacementRate" yaml:"replacement_rate"`
	// ChangePct is the real pension change against the baseline, in percent.
	ChangePct decimal.Decimal `json:"changePct" yaml:"change_pct"`
}

// SensitivityAnalysis represents a complete single-parameter sweep
type SensitivityAnalysis struct {
	Parameter   SensitivityParameter `json:"parameter" yaml:"parameter"`
	BaseValue   decimal.Decimal      `json:"baseValue" yaml:"base_value"`
	BaseNominal int64                `json:"baseNominal" yaml:"base_nominal"`
	BaseReal    int64                `json:"baseReal" yaml:"base_real"`
	Points      []SensitivityPoint   `json:"points" yaml:"points"`
	// Score is the largest ratio of real pension change to parameter change.
	Score     decimal.Decimal `json:"score" yaml:"score"`
	RiskLevel string          `json:"riskLevel" yaml:"risk_level"` // "LOW", "MEDIUM", "HIGH"
}

var (
	WageGrowthParam = SensitivityParameter{
		Name:        "wage_growth",
		MinValue:    decimal.NewFromFloat(0.015),
		MaxValue:    decimal.NewFromFloat(0.055),
		Steps:       5,
		Unit:        "percent",
		Description: "Annual nominal wage growth",
	}
	InflationRateParam = SensitivityParameter{
		Name:        "inflation_rate",
		MinValue:    decimal.NewFromFloat(0.01),
		MaxValue:    decimal.NewFromFloat(0.05),
		Steps:       5,
		Unit:        "percent",
		Description: "Annual inflation used for real values",
	}
	ContributionRateParam = SensitivityParameter{
		Name:        "contribution_rate",
		MinValue:    decimal.NewFromFloat(0.1552),
		MaxValue:    decimal.NewFromFloat(0.2352),
		Steps:       5,
		Unit:        "percent",
		Description: "Share of gross wage credited to the pension accounts",
	}
)

// CommonSensitivityParameters returns the sweepable parameters
func CommonSensitivityParameters() []SensitivityParameter {
	return []SensitivityParameter{WageGrowthParam, InflationRateParam, ContributionRateParam}
}

// FindSensitivityParameter looks a parameter up by name.
func FindSensitivityParameter(name string) (SensitivityParameter, bool) {
	for _, p := range CommonSensitivityParameters() {
		if p.Name == name {
			return p, true
		}
	}
	return SensitivityParameter{}, false
}

// ParameterValue returns the current value of a sweepable assumption.
func (a Assumptions) ParameterValue(name string) (decimal.Decimal, error) {
	switch name {
	case "wage_growth":
		return a.WageGrowth, nil
	case "inflation_rate":
		return a.InflationRate, nil
	case "contribution_rate":
		return a.ContributionRate, nil
	default:
		return decimal.Zero, fmt.Errorf("unknown sensitivity parameter %q", name)
	}
}

// WithParameter returns a copy of a with one sweepable assumption replaced.
func (a Assumptions) WithParameter(name string, value decimal.Decimal) (Assumptions, error) {
	switch name {
	case "wage_growth":
		a.WageGrowth = value
	case "inflation_rate":
		a.InflationRate = value
	case "contribution_rate":
		a.ContributionRate = value
	default:
		return a, fmt.Errorf("unknown sensitivity parameter %q", name)
	}
	return a, nil
}

// DetermineRiskLevel classifies the score.
func (sa *SensitivityAnalysis) DetermineRiskLevel() string {
	switch {
	case sa.Score.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return "HIGH"
	case sa.Score.GreaterThanOrEqual(decimal.NewFromFloat(0.5)):
		return "MEDIUM"
	default:
		return "LOW"
	}
}
