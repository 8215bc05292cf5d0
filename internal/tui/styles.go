package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/wordgrid/internal/game"
)

var (
	// Colors
	colorExact   = lipgloss.Color("#10B981") // green
	colorPresent = lipgloss.Color("#F59E0B") // yellow
	colorAbsent  = lipgloss.Color("#374151") // dark gray
	colorMuted   = lipgloss.Color("#6B7280") // gray
	colorText    = lipgloss.Color("#F9FAFB") // white
	colorDanger  = lipgloss.Color("#EF4444") // red
	colorPrimary = lipgloss.Color("#7C3AED") // purple

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			MarginBottom(1)

	tileStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(colorText).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDanger).
			Bold(true).
			MarginTop(1)

	endStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorExact).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorExact).
			Padding(0, 2).
			MarginTop(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)
)

// markColor is the background for a scored tile or key. Unknown has none.
func markColor(m game.Mark) (lipgloss.Color, bool) {
	switch m {
	case game.MarkExact:
		return colorExact, true
	case game.MarkPresent:
		return colorPresent, true
	case game.MarkAbsent:
		return colorAbsent, true
	default:
		return "", false
	}
}

// TileStyle returns the grid tile style for m.
func TileStyle(m game.Mark) lipgloss.Style {
	if c, ok := markColor(m); ok {
		return tileStyle.Background(c).BorderForeground(c)
	}
	return tileStyle
}

// KeyStyle returns the keyboard key style for m; typed keys are underlined.
func KeyStyle(m game.Mark, typed bool) lipgloss.Style {
	s := keyStyle
	if c, ok := markColor(m); ok {
		s = s.Background(c)
	}
	if typed {
		s = s.Underline(true)
	}
	return s
}
