package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConsoleFormatter renders a styled terminal summary of a simulation.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	res := report.Result
	p := report.Params
	sections := []string{titleStyle.Render("ZUS PENSION ESTIMATE")}

	if res.IsEmpty() {
		sections = append(sections, negativeStyle.Render("The simulation could not produce a result for these parameters."))
		return []byte(lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"), nil
	}

	params := []string{
		sectionStyle.Render("Parameters"),
		metricLine("Age / gender", fmt.Sprintf("%d / %s", p.Age, p.Gender)),
		metricLine("Gross salary", FormatDecimalPLN(p.GrossSalary)),
		metricLine("Working years", fmt.Sprintf("%d-%d", p.StartYear, p.EndYear)),
	}
	if report.PostalCode != "" {
		params = append(params, metricLine("Postal code", report.PostalCode))
	}
	sections = append(sections, strings.Join(params, "\n"))

	main := []string{
		sectionStyle.Render("Pension"),
		metricLine("Nominal monthly pension", FormatPLN(res.NominalPension)),
		metricLine("Real monthly pension", FormatPLN(res.RealPension)),
		metricLine("Average pension in retirement year", FormatPLN(res.AveragePensionInRetirementYear)),
		metricLine("Replacement rate", FormatPercentage(res.ReplacementRate)),
	}
	if res.PensionWithoutSickLeave != nil && res.PensionWithSickLeave != nil {
		main = append(main,
			metricLine("Without sick leave", FormatPLN(*res.PensionWithoutSickLeave)),
			metricLine("With sick leave", FormatPLN(*res.PensionWithSickLeave)),
		)
	}
	sections = append(sections, cardStyle.Render(strings.Join(main, "\n")))

	if len(res.DelayBenefits) > 0 {
		lines := []string{sectionStyle.Render("Working longer")}
		for _, d := range res.DelayBenefits {
			change := trendStyle(d.Increase >= 0).Render(fmt.Sprintf("%+d zł (%s)", d.Increase, FormatPercentage(d.IncreasePercent)))
			lines = append(lines, metricLine(fmt.Sprintf("+%d years", d.Years), FormatPLN(d.Pension)+"  "+change))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	if res.YearsNeededForExpected != nil {
		expected := FormatDecimalPLN(p.ExpectedPension)
		var line string
		switch {
		case *res.YearsNeededForExpected == 0:
			line = positiveStyle.Render(fmt.Sprintf("Expected pension of %s is already reached.", expected))
		case report.YearsNeededSaturated():
			line = negativeStyle.Render(fmt.Sprintf("Work at least %d more years to reach the expected %s.", *res.YearsNeededForExpected, expected))
		default:
			line = fmt.Sprintf("Work %d more years to reach the expected %s.", *res.YearsNeededForExpected, expected)
		}
		sections = append(sections, line)
	}

	group := []string{
		sectionStyle.Render("Compared with current pensioners"),
		metricLine("Closest group", fmt.Sprintf("%s (avg %s, %d%% of pensioners)", report.Group.Name, FormatDecimalPLN(report.Group.Average), report.Group.Percentage)),
	}
	if report.Fact != "" {
		group = append(group, mutedStyle.Render(report.Fact))
	}
	sections = append(sections, strings.Join(group, "\n"))

	return []byte(lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"), nil
}
