package output

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#2563EB")
	colorSuccess = lipgloss.Color("#16A34A")
	colorDanger  = lipgloss.Color("#DC2626")
	colorMuted   = lipgloss.Color("#6B7280")
	colorBorder  = lipgloss.Color("#D1D5DB")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(34)

	valueStyle = lipgloss.NewStyle().Bold(true)

	positiveStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	negativeStyle = lipgloss.NewStyle().Foreground(colorDanger)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
)

func metricLine(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func trendStyle(positive bool) lipgloss.Style {
	if positive {
		return positiveStyle
	}
	return negativeStyle
}
