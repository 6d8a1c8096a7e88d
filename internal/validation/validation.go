// Package validation checks simulation input before it reaches the engine.
// The engine itself never validates ranges.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rgehrsitz/emerytura/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	MinAge          = 18
	MaxAge          = 67
	MinYear         = 1970
	FutureYearSlack = 50
)

var (
	minSalary = decimal.NewFromInt(100)
	maxSalary = decimal.NewFromInt(1_000_000)

	postalCodePattern = regexp.MustCompile(`^\d{2}-\d{3}$`)
)

// IsValidAge reports whether age lies in [18, 67].
func IsValidAge(age int) bool {
	return age >= MinAge && age <= MaxAge
}

// IsValidSalary reports whether a monthly gross salary lies in [100, 1 000 000].
func IsValidSalary(salary decimal.Decimal) bool {
	return salary.GreaterThanOrEqual(minSalary) && salary.LessThanOrEqual(maxSalary)
}

// IsValidYear reports whether year lies in [1970, currentYear+50].
func IsValidYear(year, currentYear int) bool {
	return year >= MinYear && year <= currentYear+FutureYearSlack
}

// IsValidPostalCode matches the Polish DD-DDD format.
func IsValidPostalCode(code string) bool {
	return postalCodePattern.MatchString(code)
}

// FieldError describes a single rejected field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (fe FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Message)
}

// Errors collects every violation found in one pass
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "invalid simulation parameters: " + strings.Join(msgs, "; ")
}

// ValidateParams checks params against the input rules. currentYear bounds the
// accepted years. It returns nil or an Errors value.
func ValidateParams(params domain.SimulationParams, currentYear int) error {
	var errs Errors
	add := func(field, format string, args ...any) {
		errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if !IsValidAge(params.Age) {
		add("age", "must be between %d and %d, got %d", MinAge, MaxAge, params.Age)
	}
	if !params.Gender.Valid() {
		add("gender", "must be M or K, got %q", params.Gender)
	}
	if !IsValidSalary(params.GrossSalary) {
		add("grossSalary", "must be between %s and %s, got %s", minSalary, maxSalary, params.GrossSalary)
	}
	if !IsValidYear(params.StartYear, currentYear) {
		add("startYear", "must be between %d and %d, got %d", MinYear, currentYear+FutureYearSlack, params.StartYear)
	}
	if !IsValidYear(params.EndYear, currentYear) {
		add("endYear", "must be between %d and %d, got %d", MinYear, currentYear+FutureYearSlack, params.EndYear)
	}
	if params.StartYear > params.EndYear {
		add("endYear", "must not precede startYear (%d > %d)", params.StartYear, params.EndYear)
	}
	if params.AccountBalance.IsNegative() {
		add("accountBalance", "cannot be negative")
	}
	if params.SubAccountBalance.IsNegative() {
		add("subAccountBalance", "cannot be negative")
	}
	if params.ExpectedPension.IsNegative() {
		add("expectedPension", "cannot be negative")
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ValidatePostalCode accepts an empty code (it is optional) or a DD-DDD code.
func ValidatePostalCode(code string) error {
	if code == "" || IsValidPostalCode(code) {
		return nil
	}
	return Errors{{Field: "postalCode", Message: fmt.Sprintf("must match DD-DDD, got %q", code)}}
}
