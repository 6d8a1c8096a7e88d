package calculation

import (
	"testing"

	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDelayBenefits(t *testing.T) {
	engine := NewCalculationEngine()
	params := referenceParams()

	benefits, err := engine.CalculateDelayBenefits(params, []int{5, 1}, 2025)
	require.NoError(t, err)
	require.Len(t, benefits, 2)

	assert.Equal(t, 5, benefits[0].Years, "Offset order is preserved")
	assert.Equal(t, 1, benefits[1].Years)

	base, err := engine.project(params, 2025)
	require.NoError(t, err)
	for _, b := range benefits {
		assert.Equal(t, b.Pension-base.NominalPension, b.Increase)
		want := decimal.NewFromInt(b.Increase).Div(decimal.NewFromInt(base.NominalPension)).Mul(decimal.NewFromInt(100)).Round(2)
		assert.True(t, want.Equal(b.IncreasePercent), "got %s want %s", b.IncreasePercent, want)
	}
}

func TestCalculateDelayBenefits_ZeroBase(t *testing.T) {
	engine := NewCalculationEngine()
	params := referenceParams()
	params.GrossSalary = decimal.Zero

	benefits, err := engine.CalculateDelayBenefits(params, []int{1, 2, 5}, 2025)
	require.NoError(t, err)
	for _, b := range benefits {
		assert.Equal(t, int64(0), b.Increase)
		assert.True(t, b.IncreasePercent.IsZero())
	}
}

func TestCalculateDelayBenefits_PropagatesFaults(t *testing.T) {
	engine := NewCalculationEngine()
	params := referenceParams()
	params.Gender = domain.Gender("?")

	_, err := engine.CalculateDelayBenefits(params, []int{1}, 2025)
	assert.ErrorIs(t, err, ErrUnknownGender)
}

func TestCalculateYearsForExpectedPension(t *testing.T) {
	engine := NewCalculationEngine()
	params := referenceParams()

	base, err := engine.project(params, 2025)
	require.NoError(t, err)
	oneYear, err := engine.project(params.WithEndYearOffset(1), 2025)
	require.NoError(t, err)
	threeYears, err := engine.project(params.WithEndYearOffset(3), 2025)
	require.NoError(t, err)

	tests := []struct {
		name     string
		expected decimal.Decimal
		want     int
	}{
		{"zero target", decimal.Zero, 0},
		{"negative target", decimal.NewFromInt(-1), 0},
		{"equal to base", decimal.NewFromInt(base.NominalPension), 0},
		{"just above base", decimal.NewFromInt(base.NominalPension + 1), 1},
		{"one year exactly", decimal.NewFromInt(oneYear.NominalPension), 1},
		{"three years", decimal.NewFromInt(threeYears.NominalPension), 3},
		{"unreachable", decimal.NewFromInt(1_000_000), 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.CalculateYearsForExpectedPension(params, tt.expected, 2025)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCalculateYearsForExpectedPension_CustomCap(t *testing.T) {
	assumptions := domain.DefaultAssumptions()
	assumptions.MaxExtraYears = 3
	engine := NewCalculationEngineWithAssumptions(assumptions)

	got, err := engine.CalculateYearsForExpectedPension(referenceParams(), decimal.NewFromInt(1_000_000), 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}
