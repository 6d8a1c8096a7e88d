package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// CSVFormatter writes the result as metric,value rows.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(report *Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	res := report.Result

	rows := [][]string{
		{"Metric", "Value"},
		{"NominalPension", intToString(res.NominalPension)},
		{"RealPension", intToString(res.RealPension)},
		{"AveragePensionInRetirementYear", intToString(res.AveragePensionInRetirementYear)},
		{"ReplacementRate", res.ReplacementRate.StringFixed(2)},
	}
	if res.PensionWithoutSickLeave != nil && res.PensionWithSickLeave != nil {
		rows = append(rows,
			[]string{"PensionWithoutSickLeave", intToString(*res.PensionWithoutSickLeave)},
			[]string{"PensionWithSickLeave", intToString(*res.PensionWithSickLeave)},
		)
	}
	for _, d := range res.DelayBenefits {
		rows = append(rows, []string{"DelayPension+" + strconv.Itoa(d.Years), intToString(d.Pension)})
	}
	if res.YearsNeededForExpected != nil {
		years := strconv.Itoa(*res.YearsNeededForExpected)
		if report.YearsNeededSaturated() {
			years += "+"
		}
		rows = append(rows, []string{"YearsNeededForExpected", years})
	}
	rows = append(rows, []string{"PensionGroup", report.Group.Name})

	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func intToString(v int64) string { return strconv.FormatInt(v, 10) }
