package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// GenderRule groups the constants selected by gender
type GenderRule struct {
	RetirementAge   int `yaml:"retirement_age" json:"retirement_age"`
	LifeExpectancy  int `yaml:"life_expectancy" json:"life_expectancy"`
	SickDaysPerYear int `yaml:"sick_days_per_year" json:"sick_days_per_year"`
}

// Assumptions contains the fixed simplifying constants of the calculator.
// They are not actuarial tables; DefaultAssumptions mirrors the published simulator.
type Assumptions struct {
	WageGrowth         decimal.Decimal       `yaml:"wage_growth" json:"wage_growth"`
	InflationRate      decimal.Decimal       `yaml:"inflation_rate" json:"inflation_rate"`
	ContributionRate   decimal.Decimal       `yaml:"contribution_rate" json:"contribution_rate"`
	MainAccountRate    decimal.Decimal       `yaml:"main_account_rate" json:"main_account_rate"`
	SubAccountRate     decimal.Decimal       `yaml:"sub_account_rate" json:"sub_account_rate"`
	BaseAveragePension decimal.Decimal       `yaml:"base_average_pension" json:"base_average_pension"`
	DaysInYear         int                   `yaml:"days_in_year" json:"days_in_year"`
	DelayOffsets       []int                 `yaml:"delay_offsets" json:"delay_offsets"`
	MaxExtraYears      int                   `yaml:"max_extra_years" json:"max_extra_years"`
	Genders            map[Gender]GenderRule `yaml:"genders" json:"genders"`
}

// DefaultAssumptions returns a fresh copy of the standard constants
func DefaultAssumptions() Assumptions {
	return Assumptions{
		WageGrowth:         decimal.NewFromFloat(0.035),
		InflationRate:      decimal.NewFromFloat(0.025),
		ContributionRate:   decimal.NewFromFloat(0.1952),
		MainAccountRate:    decimal.NewFromFloat(0.1222),
		SubAccountRate:     decimal.NewFromFloat(0.073),
		BaseAveragePension: decimal.NewFromInt(3500),
		DaysInYear:         365,
		DelayOffsets:       []int{1, 2, 5},
		MaxExtraYears:      15,
		Genders: map[Gender]GenderRule{
			GenderFemale: {RetirementAge: 60, LifeExpectancy: 82, SickDaysPerYear: 15},
			GenderMale:   {RetirementAge: 65, LifeExpectancy: 75, SickDaysPerYear: 10},
		},
	}
}

// Rule returns the constants for g.
func (a Assumptions) Rule(g Gender) (GenderRule, bool) {
	r, ok := a.Genders[g]
	return r, ok
}

// AssumptionOverrides is the assumptions block of an input file. A nil field
// keeps the default, so an explicit zero is a valid override.
type AssumptionOverrides struct {
	WageGrowth         *decimal.Decimal              `yaml:"wage_growth"`
	InflationRate      *decimal.Decimal              `yaml:"inflation_rate"`
	ContributionRate   *decimal.Decimal              `yaml:"contribution_rate"`
	MainAccountRate    *decimal.Decimal              `yaml:"main_account_rate"`
	SubAccountRate     *decimal.Decimal              `yaml:"sub_account_rate"`
	BaseAveragePension *decimal.Decimal              `yaml:"base_average_pension"`
	DaysInYear         *int                          `yaml:"days_in_year"`
	DelayOffsets       *[]int                        `yaml:"delay_offsets"`
	MaxExtraYears      *int                          `yaml:"max_extra_years"`
	Genders            map[Gender]GenderRuleOverride `yaml:"genders"`
}

// GenderRuleOverride overrides single fields of a GenderRule
type GenderRuleOverride struct {
	RetirementAge   *int `yaml:"retirement_age"`
	LifeExpectancy  *int `yaml:"life_expectancy"`
	SickDaysPerYear *int `yaml:"sick_days_per_year"`
}

// Apply returns a copy of a with every set field of o replaced.
func (a Assumptions) Apply(o AssumptionOverrides) Assumptions {
	out := a
	setDecimal(&out.WageGrowth, o.WageGrowth)
	setDecimal(&out.InflationRate, o.InflationRate)
	setDecimal(&out.ContributionRate, o.ContributionRate)
	setDecimal(&out.MainAccountRate, o.MainAccountRate)
	setDecimal(&out.SubAccountRate, o.SubAccountRate)
	setDecimal(&out.BaseAveragePension, o.BaseAveragePension)
	setInt(&out.DaysInYear, o.DaysInYear)
	setInt(&out.MaxExtraYears, o.MaxExtraYears)
	if o.DelayOffsets != nil {
		out.DelayOffsets = append([]int{}, (*o.DelayOffsets)...)
	}
	if len(o.Genders) > 0 {
		genders := make(map[Gender]GenderRule, len(a.Genders))
		for g, r := range a.Genders {
			genders[g] = r
		}
		for g, r := range o.Genders {
			base := genders[g]
			setInt(&base.RetirementAge, r.RetirementAge)
			setInt(&base.LifeExpectancy, r.LifeExpectancy)
			setInt(&base.SickDaysPerYear, r.SickDaysPerYear)
			genders[g] = base
		}
		out.Genders = genders
	}
	return out
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// Validate rejects assumption sets the engine cannot work with
func (a Assumptions) Validate() error {
	if a.WageGrowth.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("wage growth must be greater than -100%%, got %s", a.WageGrowth)
	}
	if a.InflationRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("inflation rate must be greater than -100%%, got %s", a.InflationRate)
	}
	if a.ContributionRate.LessThan(decimal.Zero) || a.ContributionRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("contribution rate must be between 0 and 1, got %s", a.ContributionRate)
	}
	if a.DaysInYear <= 0 {
		return fmt.Errorf("days in year must be positive")
	}
	if a.MaxExtraYears <= 0 {
		return fmt.Errorf("max extra years must be positive")
	}
	for _, off := range a.DelayOffsets {
		if off <= 0 {
			return fmt.Errorf("delay offsets must be positive, got %d", off)
		}
	}
	for _, g := range []Gender{GenderMale, GenderFemale} {
		if _, ok := a.Genders[g]; !ok {
			return fmt.Errorf("missing rules for gender %s", g)
		}
	}
	return nil
}
