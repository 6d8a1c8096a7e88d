package calculation

import (
	"fmt"

	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/shopspring/decimal"
)

// AnalyzeParameter sweeps one assumption across param's range and projects
// params at each value. Both searches are skipped for every point.
func (ce *CalculationEngine) AnalyzeParameter(params domain.SimulationParams, param domain.SensitivityParameter, baseYear int) (*domain.SensitivityAnalysis, error) {
	baseValue, err := ce.Assumptions.ParameterValue(param.Name)
	if err != nil {
		return nil, err
	}
	if baseYear == 0 {
		baseYear = ce.CurrentYear()
	}

	params.ExpectedPension = decimal.Zero
	opts := Options{SkipDelay: true, BaseYear: baseYear}
	base, err := ce.TryCalculate(params, opts)
	if err != nil {
		return nil, fmt.Errorf("baseline projection: %w", err)
	}

	analysis := &domain.SensitivityAnalysis{
		Parameter:   param,
		BaseValue:   baseValue,
		BaseNominal: base.NominalPension,
		BaseReal:    base.RealPension,
		Score:       decimal.Zero,
	}

	for _, value := range generateParameterValues(param, baseValue) {
		assumptions, err := ce.Assumptions.WithParameter(param.Name, value)
		if err != nil {
			return nil, err
		}
		variant := *ce
		variant.Assumptions = assumptions

		result, err := variant.TryCalculate(params, opts)
		if err != nil {
			return nil, fmt.Errorf("projection for %s=%s: %w", param.Name, value, err)
		}

		point := domain.SensitivityPoint{
			Value:           value,
			NominalPension:  result.NominalPension,
			RealPension:     result.RealPension,
			ReplacementRate: result.ReplacementRate,
			ChangePct:       percentChange(base.RealPension, result.RealPension),
		}
		analysis.Points = append(analysis.Points, point)

		if value.Equal(baseValue) || baseValue.IsZero() {
			continue
		}
		paramChange := value.Sub(baseValue).Div(baseValue).Mul(hundred).Abs()
		if score := point.ChangePct.Abs().Div(paramChange); score.GreaterThan(analysis.Score) {
			analysis.Score = score
		}
	}

	analysis.Score = analysis.Score.Round(2)
	analysis.RiskLevel = analysis.DetermineRiskLevel()
	return analysis, nil
}

// generateParameterValues spreads Steps values evenly over the range; a single
// step sweeps only the current value.
func generateParameterValues(param domain.SensitivityParameter, baseValue decimal.Decimal) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{baseValue}
	}

	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))

	values := make([]decimal.Decimal, 0, param.Steps)
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

func percentChange(from, to int64) decimal.Decimal {
	if from == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(to - from).Div(decimal.NewFromInt(from)).Mul(hundred).Round(2)
}
