package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. A single lime accent on grays.
const (
	ColorLime     = "154" // accent (#AFFF00)
	ColorLimeDim  = "106" // inactive tabs, borders
	ColorWhite    = "255" // headings
	ColorGray     = "245" // labels, secondary text
	ColorDarkGray = "238" // card borders, separators
	ColorRed      = "196" // errors
	ColorYellow   = "220" // warnings, placeholders
)

// Styles holds the lipgloss styles used to draw results.
type Styles struct {
	// Text styles
	Header  lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Text    lipgloss.Style
	Math    lipgloss.Style
	Hint    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style

	// Layout styles
	Card      lipgloss.Style
	Border    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Sparkline lipgloss.Style
}

// DefaultStyles returns the colored styles for terminals.
func DefaultStyles() Styles {
	return Styles{
		Header:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWhite)),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Text:    lipgloss.NewStyle(),
		Math:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorLime)),
		Hint:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color(ColorGray)),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorDarkGray)).
			Padding(0, 1),
		Border: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
		Tab:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLimeDim)).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorLime)).
			Underline(true).
			Padding(0, 1),
		Sparkline: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorLime)),
	}
}

// NoColorStyles returns unstyled components for plain output.
func NoColorStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Header:    plain,
		Title:     plain,
		Label:     plain,
		Text:      plain,
		Math:      plain,
		Hint:      plain,
		Success:   plain,
		Warning:   plain,
		Error:     plain,
		Dim:       plain,
		Card:      plain,
		Border:    plain,
		Tab:       plain.Padding(0, 1),
		ActiveTab: plain.Padding(0, 1),
		Sparkline: plain,
	}
}

// GetStyles returns the styles for the color preference.
func GetStyles(noColor bool) Styles {
	if noColor {
		return NoColorStyles()
	}
	return DefaultStyles()
}
