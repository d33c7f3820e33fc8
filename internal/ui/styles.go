package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Clinical palette: teal primary, banded risk colors.
	Primary   = lipgloss.Color("#14B8A6") // Teal
	Secondary = lipgloss.Color("#5EEAD4") // Light teal
	Accent    = lipgloss.Color("#818CF8") // Indigo
	Success   = lipgloss.Color("#22C55E") // Green (low risk)
	Warning   = lipgloss.Color("#EAB308") // Yellow (moderate risk)
	Danger    = lipgloss.Color("#EF4444") // Red (high risk)
	Muted     = lipgloss.Color("#6B7B8C") // Muted blue-gray
	Text      = lipgloss.Color("#E7F6F2") // Off-white
	BgDark    = lipgloss.Color("#0B1B1A") // Deep teal-black
	BgLight   = lipgloss.Color("#16302D") // Dark teal

	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Padding(0, 1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2).
			MarginTop(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				PaddingLeft(2)

	ItemStyle = lipgloss.NewStyle().
			Foreground(Text).
			PaddingLeft(2)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Danger).
			Bold(true)

	InputStyle = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Foreground(Text).
				Border(lipgloss.NormalBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Width(20)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
			Width(80).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2)
)

// BandColor maps a risk band name to its display color.
func BandColor(band string) lipgloss.Color {
	switch band {
	case "High":
		return Danger
	case "Moderate":
		return Warning
	default:
		return Success
	}
}
