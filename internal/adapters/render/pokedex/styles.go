package pokedex

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/pokedex-cli/internal/domain"
)

const (
	neutralBackground = "#4B5563"
	neutralForeground = "#F5F5F5"
)

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	label      lipgloss.Style
	value      lipgloss.Style
	faint      lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	number     lipgloss.Style
	highlight  lipgloss.Style
	barBracket lipgloss.Style
	barEmpty   lipgloss.Style
	help       lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		faint:      lipgloss.NewStyle().Faint(true),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		number:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		highlight:  lipgloss.NewStyle().Bold(true).Underline(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
	}
}

// badge renders text on the theme of typeName. Names outside the closed type
// set fall back to a neutral theme.
func badge(typeName string, text string) string {
	return themeStyle(typeName).Padding(0, 1).Render(text)
}

func themeStyle(typeName string) lipgloss.Style {
	background, foreground := neutralBackground, neutralForeground
	if theme, err := domain.ThemeFor(typeName); err == nil {
		background, foreground = theme.Background, theme.Foreground
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color(foreground))
}

// accentStyle colours text with the theme background, for headings on a
// dark terminal.
func accentStyle(typeName string) lipgloss.Style {
	color := neutralBackground
	if theme, err := domain.ThemeFor(typeName); err == nil {
		color = theme.Background
	}

	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color))
}
