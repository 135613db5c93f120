package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorNavy   = lipgloss.Color("17")
	ColorBlue   = lipgloss.Color("39")
	ColorGray   = lipgloss.Color("244")
	ColorWhite  = lipgloss.Color("255")
	ColorOrange = lipgloss.Color("208")
)

var (
	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	legendStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	legendFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorBlue).
				Padding(0, 1)

	warningStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	statusStyle = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorWhite)

	frozenStyle = lipgloss.NewStyle().
			Background(ColorOrange).
			Foreground(ColorNavy).
			Bold(true)
)
