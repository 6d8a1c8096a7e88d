package usage

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var csvHeader = []string{
	"id", "timestamp", "expected_pension", "age", "gender", "gross_salary",
	"included_sick_leave", "account_balance", "sub_account_balance",
	"nominal_pension", "real_pension", "postal_code",
}

// ExportCSV writes records as CSV with a header row.
func ExportCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.ID,
			rec.Timestamp.Format(time.RFC3339),
			rec.ExpectedPension.StringFixed(2),
			strconv.Itoa(rec.Age),
			string(rec.Gender),
			rec.GrossSalary.StringFixed(2),
			strconv.FormatBool(rec.IncludedSickLeave),
			rec.AccountBalance.StringFixed(2),
			rec.SubAccountBalance.StringFixed(2),
			strconv.FormatInt(rec.NominalPension, 10),
			strconv.FormatInt(rec.RealPension, 10),
			rec.PostalCode,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
