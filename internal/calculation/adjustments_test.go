package calculation

import (
	"testing"

	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"2.4", 2},
		{"2.5", 3},
		{"-2.5", -2},
		{"-2.6", -3},
		{"0", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundHalfUp(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestApplySickLeaveReduction(t *testing.T) {
	engine := NewCalculationEngine()

	male, err := engine.ApplySickLeaveReduction(1000, domain.GenderMale, 40)
	require.NoError(t, err)
	assert.Equal(t, int64(973), male) // 1000 * 355/365

	female, err := engine.ApplySickLeaveReduction(1000, domain.GenderFemale, 40)
	require.NoError(t, err)
	assert.Equal(t, int64(959), female) // 1000 * 350/365

	assert.Less(t, female, male, "Longer average sick leave cuts deeper")

	_, err = engine.ApplySickLeaveReduction(1000, "X", 40)
	assert.ErrorIs(t, err, ErrUnknownGender)
}

func TestCalculateRealPension(t *testing.T) {
	engine := NewCalculationEngine()

	assert.Equal(t, int64(1000), engine.CalculateRealPension(1000, 2025, 2025))
	assert.Equal(t, int64(976), engine.CalculateRealPension(1000, 2026, 2025))
	// Past retirement years inflate instead of deflating.
	assert.Equal(t, int64(1025), engine.CalculateRealPension(1000, 2024, 2025))
}

func TestCalculateRealPension_RoundTrip(t *testing.T) {
	engine := NewCalculationEngine()

	for _, x := range []int64{1, 999, 3000, 12345} {
		deflated := engine.CalculateRealPension(x, 2060, 2025)
		back := engine.CalculateRealPension(deflated, 2025, 2060)
		assert.InDelta(t, x, back, 2, "x=%d", x)
	}
}

func TestCalculateReplacementRate(t *testing.T) {
	tests := []struct {
		name    string
		pension int64
		salary  decimal.Decimal
		want    string
	}{
		{"quarter", 500, decimal.NewFromInt(2000), "25"},
		{"two decimals", 1, decimal.NewFromInt(3), "33.33"},
		{"zero salary", 1000, decimal.Zero, "0"},
		{"negative salary", 1000, decimal.NewFromInt(-10), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateReplacementRate(tt.pension, tt.salary)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestAveragePensionForYear(t *testing.T) {
	engine := NewCalculationEngine()

	assert.Equal(t, int64(3500), engine.AveragePensionForYear(2025, 2025))
	assert.Equal(t, int64(3623), engine.AveragePensionForYear(2026, 2025)) // 3622.5 rounds up
	assert.Equal(t, int64(3382), engine.AveragePensionForYear(2024, 2025))
}

func TestGrowthFactor(t *testing.T) {
	rate := decimal.NewFromFloat(0.025)

	assert.True(t, growthFactor(rate, 0).Equal(decimal.NewFromInt(1)))
	assert.True(t, growthFactor(rate, 2).Equal(decimal.RequireFromString("1.050625")))
	inverse := growthFactor(rate, -2).Mul(growthFactor(rate, 2))
	assert.InDelta(t, 1.0, inverse.InexactFloat64(), 1e-12)
}
