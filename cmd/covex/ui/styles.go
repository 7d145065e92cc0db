// Package ui provides the terminal presentation for covex: the
// interactive assessment form and the styled diagnosis card.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"covex/internal/triage"
)

// Risk level colors, matching the severity palette of the assessment
// card: the more severe the level, the hotter the color.
var (
	ColorCritical = lipgloss.Color("#e53935") // red
	ColorHigh     = lipgloss.Color("#ff5722") // orange-red
	ColorMedium   = lipgloss.Color("#ffa726") // orange
	ColorLow      = lipgloss.Color("#8bc34a") // green
	ColorUnknown  = lipgloss.Color("#9e9e9e") // gray

	ColorAccent = lipgloss.Color("#2196f3") // blue
	ColorMuted  = lipgloss.Color("#6b7280")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	LabelStyle = lipgloss.NewStyle().Bold(true)

	FocusedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCritical)

	DisclaimerStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(ColorMuted)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)
)

// RiskStyle returns the bold colored style for a risk level.
func RiskStyle(level triage.RiskLevel) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(riskColor(level))
}

func riskColor(level triage.RiskLevel) lipgloss.Color {
	switch level {
	case triage.RiskCritical:
		return ColorCritical
	case triage.RiskHigh:
		return ColorHigh
	case triage.RiskMedium:
		return ColorMedium
	case triage.RiskLow:
		return ColorLow
	default:
		return ColorUnknown
	}
}

// Disclaimer is shown under the form and the result card.
const Disclaimer = "Disclaimer: This is an educational tool. Always consult healthcare professionals for medical advice."
