package calculation

import (
	"fmt"

	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculateDelayBenefits projects the pension for each deferral in offsets and
// compares it with retiring at params.EndYear. Entries follow offsets order.
func (ce *CalculationEngine) CalculateDelayBenefits(params domain.SimulationParams, offsets []int, baseYear int) ([]domain.DelayBenefit, error) {
	base, err := ce.project(params, baseYear)
	if err != nil {
		return nil, fmt.Errorf("base projection: %w", err)
	}

	benefits := make([]domain.DelayBenefit, 0, len(offsets))
	for _, years := range offsets {
		delayed, err := ce.project(params.WithEndYearOffset(years), baseYear)
		if err != nil {
			return nil, fmt.Errorf("projection delayed by %d years: %w", years, err)
		}

		increase := delayed.NominalPension - base.NominalPension
		percent := decimal.Zero
		if base.NominalPension > 0 {
			percent = decimal.NewFromInt(increase).
				Div(decimal.NewFromInt(base.NominalPension)).
				Mul(hundred).
				Round(2)
		}

		benefits = append(benefits, domain.DelayBenefit{
			Years:           years,
			Pension:         delayed.NominalPension,
			Increase:        increase,
			IncreasePercent: percent,
		})
	}
	return benefits, nil
}

// CalculateYearsForExpectedPension finds how many extra working years lift the
// nominal pension to expected. It returns 0 when no target is set or the base
// already meets it, and saturates at the configured maximum (read as "that
// many or more").
func (ce *CalculationEngine) CalculateYearsForExpectedPension(params domain.SimulationParams, expected decimal.Decimal, baseYear int) (int, error) {
	if !expected.IsPositive() {
		return 0, nil
	}

	base, err := ce.project(params, baseYear)
	if err != nil {
		return 0, fmt.Errorf("base projection: %w", err)
	}
	if decimal.NewFromInt(base.NominalPension).GreaterThanOrEqual(expected) {
		return 0, nil
	}

	maxExtra := ce.Assumptions.MaxExtraYears
	for extra := 1; extra <= maxExtra; extra++ {
		next, err := ce.project(params.WithEndYearOffset(extra), baseYear)
		if err != nil {
			return 0, fmt.Errorf("projection extended by %d years: %w", extra, err)
		}
		if decimal.NewFromInt(next.NominalPension).GreaterThanOrEqual(expected) {
			return extra, nil
		}
	}
	return maxExtra, nil
}
