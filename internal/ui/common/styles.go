package common

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// ThemeColors defines the palette used by the browser.
type ThemeColors struct {
	Foreground color.Color
	Muted      color.Color
	Border     color.Color

	Primary color.Color
	Success color.Color
	Warning color.Color
	Error   color.Color

	Selection color.Color
}

// DefaultColors returns the default dark palette.
func DefaultColors() ThemeColors {
	return ThemeColors{
		Foreground: lipgloss.Color("#c0caf5"),
		Muted:      lipgloss.Color("#565f89"),
		Border:     lipgloss.Color("#3b4261"),
		Primary:    lipgloss.Color("#7aa2f7"),
		Success:    lipgloss.Color("#9ece6a"),
		Warning:    lipgloss.Color("#e0af68"),
		Error:      lipgloss.Color("#f7768e"),
		Selection:  lipgloss.Color("#283457"),
	}
}

// Styles contains the browser styles.
type Styles struct {
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style

	Tile         lipgloss.Style
	SelectedTile lipgloss.Style

	StatusBar lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles builds styles from the default palette.
func DefaultStyles() Styles {
	return NewStyles(DefaultColors())
}

// NewStyles builds styles from a palette.
func NewStyles(c ThemeColors) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(c.Primary).Bold(true),
		Body:     lipgloss.NewStyle().Foreground(c.Foreground),
		Muted:    lipgloss.NewStyle().Foreground(c.Muted),
		Selected: lipgloss.NewStyle().Foreground(c.Foreground).Background(c.Selection),

		Tile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Border).
			Padding(0, 1),
		SelectedTile: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c.Primary).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().Foreground(c.Muted),
		HelpKey:   lipgloss.NewStyle().Foreground(c.Primary),
		HelpDesc:  lipgloss.NewStyle().Foreground(c.Muted),

		Error:   lipgloss.NewStyle().Foreground(c.Error),
		Success: lipgloss.NewStyle().Foreground(c.Success),
	}
}

// Spinner frames (braille pattern animation).
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerFrame returns the spinner character for a given frame index.
func SpinnerFrame(frame int) string {
	return spinnerFrames[frame%len(spinnerFrames)]
}
