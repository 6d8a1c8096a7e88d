package calculation

import (
	"fmt"

	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// roundHalfUp rounds to the nearest integer with halves going towards +Inf.
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Add(half).Floor().IntPart()
}

// growthFactor returns (1+rate)^years; negative years give the reciprocal.
func growthFactor(rate decimal.Decimal, years int) decimal.Decimal {
	base := one.Add(rate)
	if years >= 0 {
		return base.Pow(decimal.NewFromInt(int64(years)))
	}
	return one.Div(base.Pow(decimal.NewFromInt(int64(-years))))
}

// ApplySickLeaveReduction lowers a pension by the average share of the year
// spent on sick leave for the given gender. yearsWorked does not change the
// fraction; it is accepted so callers can pass the full context.
func (ce *CalculationEngine) ApplySickLeaveReduction(pension int64, gender domain.Gender, yearsWorked int) (int64, error) {
	rule, ok := ce.Assumptions.Rule(gender)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownGender, gender)
	}
	fraction := decimal.NewFromInt(int64(rule.SickDaysPerYear)).Div(decimal.NewFromInt(int64(ce.Assumptions.DaysInYear)))
	return roundHalfUp(decimal.NewFromInt(pension).Mul(one.Sub(fraction))), nil
}

// CalculateRealPension deflates nominalPension from retirementYear back to
// baseYear. A retirement year before the base year inflates it instead.
func (ce *CalculationEngine) CalculateRealPension(nominalPension int64, retirementYear, baseYear int) int64 {
	factor := growthFactor(ce.Assumptions.InflationRate, retirementYear-baseYear)
	return roundHalfUp(decimal.NewFromInt(nominalPension).Div(factor))
}

// CalculateReplacementRate returns pension as a percentage of the final
// indexed salary, rounded to 2 decimals. A non-positive salary yields 0.
func CalculateReplacementRate(pension int64, indexedSalary decimal.Decimal) decimal.Decimal {
	if !indexedSalary.IsPositive() {
		return decimal.Zero
	}
	return decimal.NewFromInt(pension).Div(indexedSalary).Mul(hundred).Round(2)
}

// AveragePensionForYear projects the population-average pension, pegged to
// baseYear, forward to year at the wage-growth rate. It does not depend on
// the simulated salary.
func (ce *CalculationEngine) AveragePensionForYear(year, baseYear int) int64 {
	factor := growthFactor(ce.Assumptions.WageGrowth, year-baseYear)
	return roundHalfUp(ce.Assumptions.BaseAveragePension.Mul(factor))
}
