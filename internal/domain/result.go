package domain

import "github.com/shopspring/decimal"

// DelayBenefit describes the projected gain from postponing retirement
type DelayBenefit struct {
	Years           int             `yaml:"years" json:"years"`
	Pension         int64           `yaml:"pension" json:"pension"`
	Increase        int64           `yaml:"increase" json:"increase"`
	IncreasePercent decimal.Decimal `yaml:"increase_percent" json:"increasePercent"`
}

// Breakdown holds the intermediate figures behind a result. It is informational
// only and absent from degraded results.
type Breakdown struct {
	YearsWorked        int             `yaml:"years_worked" json:"yearsWorked"`
	RetirementYear     int             `yaml:"retirement_year" json:"retirementYear"`
	BaseYear           int             `yaml:"base_year" json:"baseYear"`
	RetirementAge      int             `yaml:"retirement_age" json:"retirementAge"`
	DivisionMonths     int             `yaml:"division_months" json:"divisionMonths"`
	Contributions      decimal.Decimal `yaml:"contributions" json:"contributions"`
	MainAccountShare   decimal.Decimal `yaml:"main_account_share" json:"mainAccountShare"`
	SubAccountShare    decimal.Decimal `yaml:"sub_account_share" json:"subAccountShare"`
	TotalCapital       decimal.Decimal `yaml:"total_capital" json:"totalCapital"`
	FinalIndexedSalary decimal.Decimal `yaml:"final_indexed_salary" json:"finalIndexedSalary"`
}

// PensionResult is the outcome of a simulation. The zero value is the neutral
// "no result" returned when a calculation faults.
type PensionResult struct {
	NominalPension                 int64           `yaml:"nominal_pension" json:"nominalPension"`
	RealPension                    int64           `yaml:"real_pension" json:"realPension"`
	AveragePensionInRetirementYear int64           `yaml:"average_pension_in_retirement_year" json:"averagePensionInRetirementYear"`
	ReplacementRate                decimal.Decimal `yaml:"replacement_rate" json:"replacementRate"`
	PensionWithoutSickLeave        *int64          `yaml:"pension_without_sick_leave,omitempty" json:"pensionWithoutSickLeave,omitempty"`
	PensionWithSickLeave           *int64          `yaml:"pension_with_sick_leave,omitempty" json:"pensionWithSickLeave,omitempty"`
	DelayBenefits                  []DelayBenefit  `yaml:"delay_benefits" json:"delayBenefits"`
	YearsNeededForExpected         *int            `yaml:"years_needed_for_expected,omitempty" json:"yearsNeededForExpected,omitempty"`
	Breakdown                      *Breakdown      `yaml:"breakdown,omitempty" json:"breakdown,omitempty"`
}

// EmptyPensionResult is the degraded result: every figure zero, no delay
// entries and no optional fields.
func EmptyPensionResult() PensionResult {
	return PensionResult{
		ReplacementRate: decimal.Zero,
		DelayBenefits:   []DelayBenefit{},
	}
}

// IsEmpty reports whether r carries no projection at all.
func (r PensionResult) IsEmpty() bool {
	return r.NominalPension == 0 && r.RealPension == 0 &&
		r.AveragePensionInRetirementYear == 0 && r.ReplacementRate.IsZero() &&
		len(r.DelayBenefits) == 0 && r.Breakdown == nil
}
