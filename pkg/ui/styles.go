// Package ui provides the Bubble Tea TUI for the arbitrage bot.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette shared by the dashboard and the welcome screen.
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // purple, headers
	ColorSecondary = lipgloss.Color("#10B981") // green, healthy / profit
	ColorDanger    = lipgloss.Color("#EF4444") // red, errors / loss
	ColorWarning   = lipgloss.Color("#F59E0B") // amber, paused / degraded
	ColorMuted     = lipgloss.Color("#6B7280") // gray, secondary text
	ColorBorder    = lipgloss.Color("#374151") // dark gray, box borders
)

var (
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(ColorPrimary).
			Padding(0, 2)

	// HeaderStyle marks section headers inside panels.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	StatusConnected = lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)

	StatusDisconnected = lipgloss.NewStyle().
				Foreground(ColorDanger).
				Bold(true)

	PositiveValue = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	NegativeValue = lipgloss.NewStyle().
			Foreground(ColorDanger)

	MutedValue = lipgloss.NewStyle().
			Foreground(ColorMuted)

	PausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWarning)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)
)
