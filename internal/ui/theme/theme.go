// Package theme holds the colours and text styles shared by every screen.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette. The dark slate background is assumed; nothing sets it.
var (
	Primary   = lipgloss.Color("#6366F1") // indigo: focus, app name
	Secondary = lipgloss.Color("#14B8A6") // teal: maths expressions, bars
	Accent    = lipgloss.Color("#F59E0B") // amber: section headings
	Success   = lipgloss.Color("#22C55E")
	Warning   = lipgloss.Color("#EAB308")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	Border    = lipgloss.Color("#334155")
)

// Mastery is the colour for a topic score: green once mastered, yellow
// while still in progress.
func Mastery(mastered bool) color.Color {
	if mastered {
		return Success
	}
	return Warning
}

var (
	Title       = lipgloss.NewStyle().Foreground(Primary).Bold(true).Align(lipgloss.Center)
	LevelHeader = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Body        = lipgloss.NewStyle().Foreground(Text)
	Hint        = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Math        = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
)

// Answer feedback and list selection.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

var (
	ProgressEmpty = lipgloss.NewStyle().Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border)
)
