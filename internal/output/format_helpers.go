package output

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPLN formats a whole-zloty amount with space-grouped thousands.
func FormatPLN(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + " zł"
}

// FormatDecimalPLN formats a decimal amount rounded to whole zloty.
func FormatDecimalPLN(amount decimal.Decimal) string {
	return FormatPLN(amount.Round(0).IntPart())
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }
