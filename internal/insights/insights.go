// Package insights holds the context figures shown next to a simulation:
// the distribution of current pensions and a rotating set of facts.
package insights

import (
	"math/rand/v2"

	"github.com/shopspring/decimal"
)

// PensionGroup is one band of the current pension distribution
type PensionGroup struct {
	Name        string          `json:"name" yaml:"name"`
	Average     decimal.Decimal `json:"average" yaml:"average"`
	Percentage  int             `json:"percentage" yaml:"percentage"`
	Description string          `json:"description" yaml:"description"`
}

// PensionGroups returns the distribution bands, lowest first.
func PensionGroups() []PensionGroup {
	return []PensionGroup{
		{
			Name:        "Poniżej minimalnej",
			Average:     decimal.NewFromInt(1200),
			Percentage:  8,
			Description: "Świadczeniobiorcy z niską aktywnością zawodową, poniżej 25 lat dla mężczyzn i 20 lat dla kobiet, bez prawa do gwarancji minimalnej emerytury",
		},
		{
			Name:        "Minimalna",
			Average:     decimal.NewFromInt(1780),
			Percentage:  15,
			Description: "Minimalna gwarantowana dla osób ze stażem i składkami",
		},
		{
			Name:        "Średnia",
			Average:     decimal.NewFromInt(3500),
			Percentage:  45,
			Description: "Najliczniejsza grupa w okolicach średniej krajowej",
		},
		{
			Name:        "Powyżej średniej",
			Average:     decimal.NewFromInt(5200),
			Percentage:  25,
			Description: "Wyższe świadczenia dzięki długiemu stażowi i wysokim zarobkom",
		},
		{
			Name:        "Wysokie",
			Average:     decimal.NewFromInt(8500),
			Percentage:  7,
			Description: "Najwyższe świadczenia, zwykle długi staż i brak przerw",
		},
	}
}

// GroupFor returns the band whose average is closest to pension.
func GroupFor(pension int64) PensionGroup {
	groups := PensionGroups()
	p := decimal.NewFromInt(pension)
	best := groups[0]
	bestDiff := best.Average.Sub(p).Abs()
	for _, g := range groups[1:] {
		if diff := g.Average.Sub(p).Abs(); diff.LessThan(bestDiff) {
			best, bestDiff = g, diff
		}
	}
	return best
}

var facts = []string{
	"Najwyższą emeryturę w Polsce otrzymuje mieszkaniec woj. śląskiego - 24 500 zł, pracował 47 lat, bez zwolnień",
	"Średnia emerytura w Polsce wzrosła o 156% w ciągu ostatnich 15 lat",
	"Tylko 23% Polaków wie, ile wyniesie ich przyszła emerytura",
}

// Facts returns a copy of every known fact.
func Facts() []string {
	return append([]string(nil), facts...)
}

// RandomFact picks a fact using rng, or the global source when rng is nil.
func RandomFact(rng *rand.Rand) string {
	if rng == nil {
		return facts[rand.IntN(len(facts))]
	}
	return facts[rng.IntN(len(facts))]
}
