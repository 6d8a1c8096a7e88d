package calculation

import (
	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/shopspring/decimal"
)

// IndexWages projects a salary for every entry of years. Growth compounds from
// the first listed year, so the i-th salary is initialSalary*(1+g)^i whatever
// the calendar value; callers pass ascending, contiguous years.
func (ce *CalculationEngine) IndexWages(initialSalary decimal.Decimal, years []int) []decimal.Decimal {
	wages := make([]decimal.Decimal, len(years))
	factor := decimal.NewFromInt(1).Add(ce.Assumptions.WageGrowth)
	wage := initialSalary
	for i := range years {
		if i > 0 {
			wage = wage.Mul(factor)
		}
		wages[i] = wage
	}
	return wages
}

// EstimateAccountBalance approximates the capital accumulated from startYear to
// currentYear inclusive for a salary indexed from startYear.
func (ce *CalculationEngine) EstimateAccountBalance(salary decimal.Decimal, startYear, currentYear int) int64 {
	years := make([]int, 0)
	for y := startYear; y <= currentYear; y++ {
		years = append(years, y)
	}
	total := decimal.Zero
	for _, w := range ce.IndexWages(salary, years) {
		total = total.Add(w.Mul(ce.Assumptions.ContributionRate))
	}
	return roundHalfUp(total)
}

type accrual struct {
	contributions decimal.Decimal
	mainAccount   decimal.Decimal
	subAccount    decimal.Decimal
	total         decimal.Decimal
}

// accrue sums yearly contributions and adds the declared balances when positive.
func (ce *CalculationEngine) accrue(wages []decimal.Decimal, accountBalance, subAccountBalance decimal.Decimal) accrual {
	a := accrual{contributions: decimal.Zero}
	for _, w := range wages {
		a.contributions = a.contributions.Add(w.Mul(ce.Assumptions.ContributionRate))
	}

	a.mainAccount, a.subAccount = decimal.Zero, decimal.Zero
	if rate := ce.Assumptions.ContributionRate; rate.IsPositive() {
		a.mainAccount = a.contributions.Mul(ce.Assumptions.MainAccountRate).Div(rate)
		a.subAccount = a.contributions.Mul(ce.Assumptions.SubAccountRate).Div(rate)
	}

	a.total = a.contributions
	if accountBalance.IsPositive() {
		a.total = a.total.Add(accountBalance)
	}
	if subAccountBalance.IsPositive() {
		a.total = a.total.Add(subAccountBalance)
	}
	return a
}

// divisionMonths is the number of monthly payments the capital is spread over.
// The one-year floor keeps the divisor positive for any rule set.
func divisionMonths(rule domain.GenderRule) int {
	years := rule.LifeExpectancy - rule.RetirementAge
	if years < 1 {
		years = 1
	}
	return years * 12
}

func (ce *CalculationEngine) annuitize(total decimal.Decimal, months int) int64 {
	return roundHalfUp(total.Div(decimal.NewFromInt(int64(months))))
}
