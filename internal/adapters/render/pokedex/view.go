package pokedex

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/pokedex-cli/internal/application"
	"github.com/bnema/pokedex-cli/internal/domain"
)

const (
	maxBaseStat   = 255
	statBarWidth  = 24
	statLabelSize = 16
)

// Content is one screen the renderer knows how to draw.
type Content interface {
	render(s styles) string
}

type ListContent struct {
	Cards   []application.Card
	Total   int
	HasMore bool
}

type SuggestionContent struct {
	Query   string
	Matches []domain.PokemonSummary
}

type DetailContent struct {
	Detail     domain.PokemonDetail
	ShowDamage bool
}

type NotFoundContent struct {
	Ref string
}

type SessionContent struct {
	Session   domain.UserSession
	ExpiresAt time.Time
	Now       time.Time
}

func (c ListContent) render(s styles) string {
	lines := []string{
		s.title.Render("Pokédex"),
		s.header.Render(fmt.Sprintf("showing %d of %d", len(c.Cards), c.Total)),
	}

	if len(c.Cards) == 0 {
		lines = append(lines, s.faint.Render("No Pokémon to show."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, card := range c.Cards {
		lines = append(lines, renderCard(card, s))
	}
	if c.HasMore {
		lines = append(lines, s.help.Render("More: pdx list --pages N"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCard(card application.Card, s styles) string {
	number := s.number.Render(fmt.Sprintf("%-6s", card.Number()))
	if card.ID <= 0 {
		number = s.number.Render(fmt.Sprintf("%-6s", "#???"))
	}

	badges := make([]string, 0, len(card.Types))
	for _, t := range card.Types {
		badges = append(badges, badge(t, t))
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		number,
		accentStyle(card.PrimaryType()).Render(fmt.Sprintf("%-14s", capitalize(card.Summary.Name))),
		" ",
		strings.Join(badges, " "),
	)
}

func (c SuggestionContent) render(s styles) string {
	if len(c.Matches) == 0 {
		return s.faint.Render("No suggestions.")
	}

	lines := make([]string, 0, len(c.Matches))
	query := strings.ToLower(c.Query)
	for _, match := range c.Matches {
		lines = append(lines, highlightMatch(match.Name, query, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func highlightMatch(name string, query string, s styles) string {
	idx := strings.Index(strings.ToLower(name), query)
	if query == "" || idx < 0 {
		return s.value.Render(name)
	}

	end := idx + len(query)
	return s.value.Render(name[:idx]) + s.highlight.Render(name[idx:end]) + s.value.Render(name[end:])
}

func (c DetailContent) render(s styles) string {
	d := c.Detail
	primary := d.PrimaryType()
	accent := accentStyle(primary)

	title := themeStyle(primary).Bold(true).Padding(0, 1).Render(
		fmt.Sprintf("%s  %s", capitalize(d.Name), d.Number()),
	)

	badges := make([]string, 0, len(d.Types))
	for _, t := range d.Types {
		badges = append(badges, badge(t, t))
	}

	parts := []string{
		title,
		renderNavigation(d, s),
		strings.Join(badges, " "),
		s.section.Render(accent.Render("Info")),
		fmt.Sprintf("%s %s   %s %s   %s %s",
			s.label.Render("Weight"), s.value.Render(formatTenths(d.Weight)+"kg"),
			s.label.Render("Height"), s.value.Render(formatTenths(d.Height)+"m"),
			s.label.Render("Abilities"), s.value.Render(strings.Join(d.Abilities, ", ")),
		),
		s.section.Render(accent.Render("Basic stats")),
	}
	for _, stat := range d.Stats {
		parts = append(parts, renderStat(stat, primary, s))
	}

	parts = append(parts, s.section.Render(accent.Render("Description")))
	if d.Description == "" {
		parts = append(parts, s.faint.Render("No description."))
	} else {
		parts = append(parts, s.value.Render(d.Description))
	}

	parts = append(parts, s.section.Render(accent.Render("Sprites")))
	if len(d.Sprites) == 0 {
		parts = append(parts, s.faint.Render("No sprites."))
	}
	for _, sprite := range d.Sprites {
		parts = append(parts, s.faint.Render(sprite))
	}
	parts = append(parts, s.label.Render("Artwork ")+s.faint.Render(d.ArtworkURL))

	if c.ShowDamage {
		parts = append(parts, s.section.Render(accent.Render("Damage relations")))
		parts = append(parts, renderDamageRelations(d.DamageRelations, s)...)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderNavigation(d domain.PokemonDetail, s styles) string {
	previous := "-"
	if d.Previous != nil {
		previous = "‹ " + *d.Previous
	}
	next := "-"
	if d.Next != nil {
		next = *d.Next + " ›"
	}

	return s.header.Render(fmt.Sprintf("%s   %s", previous, next))
}

func renderStat(stat domain.Stat, typeName string, s styles) string {
	value := lipgloss.NewStyle().Foreground(interpolateColor(float64(stat.BaseStat), 0, maxBaseStat)).
		Render(fmt.Sprintf("%03d", stat.BaseStat))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.label.Render(fmt.Sprintf("%-*s", statLabelSize, stat.Name)),
		value,
		" ",
		renderStatBar(stat.BaseStat, statBarWidth, typeName, s),
	)
}

func renderStatBar(value int, width int, typeName string, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * float64(clamp(value, 0, maxBaseStat)) / maxBaseStat))
	fill := accentStyle(typeName).Render(strings.Repeat("=", filled))
	empty := s.barEmpty.Render(strings.Repeat("-", width-filled))

	return lipgloss.JoinHorizontal(lipgloss.Top, s.barBracket.Render("["), fill, empty, s.barBracket.Render("]"))
}

func renderDamageRelations(relations []domain.TypeDamageRelations, s styles) []string {
	if len(relations) == 0 {
		return []string{s.faint.Render("No damage relations.")}
	}

	lines := make([]string, 0, len(relations)*7)
	for _, rel := range relations {
		lines = append(lines, badge(rel.Type, rel.Type))
		if rel.Relations == nil {
			lines = append(lines, s.warning.Render("  unavailable"))
			continue
		}
		groups := []struct {
			label string
			names []domain.NamedResource
		}{
			{"double damage from", rel.Relations.DoubleDamageFrom},
			{"double damage to", rel.Relations.DoubleDamageTo},
			{"half damage from", rel.Relations.HalfDamageFrom},
			{"half damage to", rel.Relations.HalfDamageTo},
			{"no damage from", rel.Relations.NoDamageFrom},
			{"no damage to", rel.Relations.NoDamageTo},
		}
		for _, group := range groups {
			if len(group.names) == 0 {
				continue
			}
			badges := make([]string, 0, len(group.names))
			for _, named := range group.names {
				badges = append(badges, badge(named.Name, named.Name))
			}
			lines = append(lines, "  "+s.label.Render(fmt.Sprintf("%-19s", group.label))+strings.Join(badges, " "))
		}
	}

	return lines
}

func (c NotFoundContent) render(s styles) string {
	if c.Ref == "" {
		return s.warning.Render("...NOT FOUND")
	}
	return s.warning.Render(fmt.Sprintf("%s ...NOT FOUND", c.Ref))
}

func (c SessionContent) render(s styles) string {
	if c.Session.IsZero() {
		return s.faint.Render("Not signed in. Run: pdx login")
	}

	lines := []string{
		s.title.Render(c.Session.DisplayName),
		s.label.Render("email    ") + s.value.Render(orNA(c.Session.Email)),
		s.label.Render("provider ") + s.value.Render(orNA(c.Session.Provider)),
		s.label.Render("uid      ") + s.value.Render(c.Session.UID),
	}
	if !c.Session.SignedInAt.IsZero() {
		lines = append(lines, s.label.Render("since    ")+s.value.Render(c.Session.SignedInAt.Format(time.RFC3339)))
	}
	if !c.ExpiresAt.IsZero() {
		expiry := s.value.Render(c.ExpiresAt.Format(time.RFC3339))
		if !c.Now.IsZero() && !c.ExpiresAt.After(c.Now) {
			expiry += " " + s.warning.Render("[expired]")
		}
		lines = append(lines, s.label.Render("token    ")+expiry)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func capitalize(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

func formatTenths(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "n/a"
	}
	return value
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// interpolateColor maps value onto the ANSI greyscale ramp, brighter for
// higher values.
func interpolateColor(value, min, max float64) lipgloss.Color {
	if max == min {
		return lipgloss.Color("255")
	}

	normalized := (value - min) / (max - min)
	if normalized < 0 {
		normalized = 0
	}
	if normalized > 1 {
		normalized = 1
	}

	return lipgloss.Color(fmt.Sprintf("%d", int(240+15*normalized)))
}
