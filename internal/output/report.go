package output

import (
	"time"

	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/rgehrsitz/emerytura/internal/insights"
)

// Report bundles everything rendered for a single simulation
type Report struct {
	GeneratedAt time.Time               `json:"generatedAt" yaml:"generated_at"`
	PostalCode  string                  `json:"postalCode,omitempty" yaml:"postal_code,omitempty"`
	Params      domain.SimulationParams `json:"params" yaml:"params"`
	Result      domain.PensionResult    `json:"result" yaml:"result"`
	Group       insights.PensionGroup   `json:"group" yaml:"group"`
	Fact        string                  `json:"fact,omitempty" yaml:"fact,omitempty"`
	// MaxExtraYears is the years-needed search cap; a result at the cap means "that many or more".
	MaxExtraYears int `json:"maxExtraYears" yaml:"max_extra_years"`
}

// NewReport builds a report and places the nominal pension in its distribution band.
func NewReport(params domain.SimulationParams, postalCode string, result domain.PensionResult, fact string, maxExtraYears int, at time.Time) *Report {
	return &Report{
		MaxExtraYears: maxExtraYears,
		GeneratedAt:   at,
		PostalCode:    postalCode,
		Params:        params,
		Result:        result,
		Group:         insights.GroupFor(result.NominalPension),
		Fact:          fact,
	}
}

// YearsNeededSaturated reports whether the years-needed figure hit the search
// cap and is therefore a lower bound.
func (r *Report) YearsNeededSaturated() bool {
	y := r.Result.YearsNeededForExpected
	return y != nil && r.MaxExtraYears > 0 && *y >= r.MaxExtraYears
}
