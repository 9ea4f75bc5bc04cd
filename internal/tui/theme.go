package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette, true-color hex values.
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPeach    lipgloss.Color = "#fab387"
	colorRed      lipgloss.Color = "#f38ba8"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface2 lipgloss.Color = "#585b70"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorMantle   lipgloss.Color = "#181825"
	colorCrust    lipgloss.Color = "#11111b"
)

// Theme is the set of styles the keypad renders with.
type Theme struct {
	Name string

	Title     lipgloss.Style
	Display   lipgloss.Style
	Pending   lipgloss.Style
	Digit     lipgloss.Style
	Function  lipgloss.Style
	Operator  lipgloss.Style
	Active    lipgloss.Style
	Pressed   lipgloss.Style
	Status    lipgloss.Style
	HelpKey   lipgloss.Style
	HelpDesc  lipgloss.Style
	Separator lipgloss.Style
}

func mochaTheme() Theme {
	key := lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
	return Theme{
		Name:  "mocha",
		Title: lipgloss.NewStyle().Foreground(colorMauve).Bold(true),
		Display: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSurface1).
			Foreground(colorText).
			Background(colorCrust).
			Bold(true).
			Padding(0, 1),
		Pending:   lipgloss.NewStyle().Foreground(colorOverlay1).Background(colorCrust),
		Digit:     key.Foreground(colorText).Background(colorSurface1),
		Function:  key.Foreground(colorBase).Background(colorSubtext0),
		Operator:  key.Foreground(colorBase).Background(colorPeach),
		Active:    key.Foreground(colorPeach).Background(colorText),
		Pressed:   key.Foreground(colorBase).Background(colorLavender),
		Status:    lipgloss.NewStyle().Foreground(colorRed),
		HelpKey:   lipgloss.NewStyle().Foreground(colorMauve).Bold(true),
		HelpDesc:  lipgloss.NewStyle().Foreground(colorSubtext0),
		Separator: lipgloss.NewStyle().Foreground(colorSurface2).Background(colorMantle),
	}
}

func plainTheme() Theme {
	key := lipgloss.NewStyle().Align(lipgloss.Center)
	return Theme{
		Name:      "plain",
		Title:     lipgloss.NewStyle().Bold(true),
		Display:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Pending:   lipgloss.NewStyle(),
		Digit:     key,
		Function:  key,
		Operator:  key,
		Active:    key.Reverse(true),
		Pressed:   key.Underline(true),
		Status:    lipgloss.NewStyle(),
		HelpKey:   lipgloss.NewStyle().Bold(true),
		HelpDesc:  lipgloss.NewStyle(),
		Separator: lipgloss.NewStyle(),
	}
}

// ThemeByName returns the named theme, falling back to mocha.
func ThemeByName(name string) Theme {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain", "none", "mono":
		return plainTheme()
	default:
		return mochaTheme()
	}
}
