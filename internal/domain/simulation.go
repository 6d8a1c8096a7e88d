package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Gender selects the fixed life-expectancy, retirement-age and sick-leave
// constants. It carries no other meaning in the calculator.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "K"
)

// ParseGender accepts "M"/"K" in any case.
func ParseGender(s string) (Gender, error) {
	switch g := Gender(strings.ToUpper(strings.TrimSpace(s))); g {
	case GenderMale, GenderFemale:
		return g, nil
	default:
		return "", fmt.Errorf("unknown gender %q (expected M or K)", s)
	}
}

// Valid reports whether g is one of the supported values.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// SimulationParams is the validated input of a single pension simulation
type SimulationParams struct {
	Age               int             `yaml:"age" json:"age"`
	Gender            Gender          `yaml:"gender" json:"gender"`
	GrossSalary       decimal.Decimal `yaml:"gross_salary" json:"grossSalary"` // Monthly gross wage in StartYear
	StartYear         int             `yaml:"start_year" json:"startYear"`
	EndYear           int             `yaml:"end_year" json:"endYear"`
	AccountBalance    decimal.Decimal `yaml:"account_balance,omitempty" json:"accountBalance,omitempty"`
	SubAccountBalance decimal.Decimal `yaml:"sub_account_balance,omitempty" json:"subAccountBalance,omitempty"`
	IncludeSickLeave  bool            `yaml:"include_sick_leave" json:"includeSickLeave"`
	ExpectedPension   decimal.Decimal `yaml:"expected_pension" json:"expectedPension"`
}

// WithEndYearOffset returns a copy of p with the working period extended by years.
func (p SimulationParams) WithEndYearOffset(years int) SimulationParams {
	p.EndYear += years
	return p
}

// WorkingYears lists every calendar year from StartYear to EndYear inclusive.
// An inverted range yields an empty slice.
func (p SimulationParams) WorkingYears() []int {
	if p.EndYear < p.StartYear {
		return []int{}
	}
	years := make([]int, 0, p.EndYear-p.StartYear+1)
	for y := p.StartYear; y <= p.EndYear; y++ {
		years = append(years, y)
	}
	return years
}

// YearsWorked is the length of the working period, never negative.
func (p SimulationParams) YearsWorked() int {
	n := p.EndYear - p.StartYear + 1
	if n < 0 {
		return 0
	}
	return n
}
