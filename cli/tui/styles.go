package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Suspicion-bucket colors.
	colorCritical = lipgloss.Color("#FF0000")
	colorHigh     = lipgloss.Color("#FF8C00")
	colorMedium   = lipgloss.Color("#FFD700")
	colorLow      = lipgloss.Color("#4169E1")

	// UI colors.
	colorTitle    = lipgloss.Color("#FFFFFF")
	colorSubtle   = lipgloss.Color("#666666")
	colorSelected = lipgloss.Color("#7D56F4")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTitle)

	subtleStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorSelected)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorSubtle)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorSubtle)

	lineIndexStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#AAAAAA"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#88C0D0"))

	reasonHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#A3BE8C"))

	contextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B48EAD"))
)

// severityStyle returns a styled suspicion badge for a 0-99 total.
func severityStyle(total int) lipgloss.Style {
	var color lipgloss.Color
	switch {
	case total >= 90:
		color = colorCritical
	case total >= 75:
		color = colorHigh
	case total >= 60:
		color = colorMedium
	default:
		color = colorLow
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color)
}

// severityBadge returns a short badge string for list display.
func severityBadge(total int) string {
	style := severityStyle(total)
	switch {
	case total >= 90:
		return style.Render("CRIT")
	case total >= 75:
		return style.Render("HIGH")
	case total >= 60:
		return style.Render(" MED")
	default:
		return style.Render(" LOW")
	}
}
