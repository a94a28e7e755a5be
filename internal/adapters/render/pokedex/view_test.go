package pokedex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pokedex-cli/internal/application"
	"github.com/bnema/pokedex-cli/internal/domain"
)

func ptr(s string) *string { return &s }

func bulbasaur() domain.PokemonDetail {
	return domain.PokemonDetail{
		ID:        1,
		Name:      "bulbasaur",
		Types:     []string{"grass", "poison"},
		WeightHg:  69,
		HeightDm:  7,
		Weight:    6.9,
		Height:    0.7,
		Abilities: []string{"overgrow", "chlorophyll"},
		Stats: []domain.Stat{
			{Name: "Hit Point", BaseStat: 45},
			{Name: "Attack", BaseStat: 49},
			{Name: "Defense", BaseStat: 49},
			{Name: "Special Attack", BaseStat: 65},
			{Name: "Special Defense", BaseStat: 65},
			{Name: "Speed", BaseStat: 45},
		},
		Sprites:     []string{"https://sprites.example/1.png"},
		Description: "A strange seed was planted on its back at birth.",
		Next:        ptr("ivysaur"),
		DamageRelations: []domain.TypeDamageRelations{
			{Type: "grass", Relations: &domain.DamageRelations{
				DoubleDamageFrom: []domain.NamedResource{{Name: "fire"}, {Name: "ice"}},
			}},
			{Type: "poison"},
		},
		ArtworkURL: domain.ArtworkURL(1),
	}
}

func TestRenderDetail(t *testing.T) {
	t.Parallel()

	output, err := Render(DetailContent{Detail: bulbasaur()})
	require.NoError(t, err)

	assert.Contains(t, output, "Bulbasaur  #001")
	assert.Contains(t, output, "ivysaur ›")
	assert.Contains(t, output, "grass")
	assert.Contains(t, output, "6.9kg")
	assert.Contains(t, output, "0.7m")
	assert.Contains(t, output, "overgrow, chlorophyll")
	assert.Contains(t, output, "Special Defense")
	assert.Contains(t, output, "065")
	assert.Contains(t, output, "A strange seed")
	assert.Contains(t, output, "https://sprites.example/1.png")
	assert.Contains(t, output, "official-artwork/1.png")
	assert.NotContains(t, output, "Damage relations")
}

func TestRenderDetailWithDamageRelations(t *testing.T) {
	t.Parallel()

	output, err := Render(DetailContent{Detail: bulbasaur(), ShowDamage: true})
	require.NoError(t, err)

	assert.Contains(t, output, "Damage relations")
	assert.Contains(t, output, "double damage from")
	assert.Contains(t, output, "fire")
	assert.Contains(t, output, "unavailable")
}

func TestRenderDetailWithoutOptionalFields(t *testing.T) {
	t.Parallel()

	detail := bulbasaur()
	detail.Description = ""
	detail.Sprites = nil
	detail.Next = nil
	detail.Types = []string{"shadow"}

	output, err := Render(DetailContent{Detail: detail})
	require.NoError(t, err)

	assert.Contains(t, output, "No description.")
	assert.Contains(t, output, "No sprites.")
	assert.Contains(t, output, "shadow")
}

func TestRenderList(t *testing.T) {
	t.Parallel()

	output, err := Render(ListContent{
		Cards: []application.Card{
			{Summary: domain.PokemonSummary{Name: "bulbasaur"}, ID: 1, Types: []string{"grass", "poison"}},
			{Summary: domain.PokemonSummary{Name: "missingno"}, Types: []string{}},
		},
		Total:   1008,
		HasMore: true,
	})
	require.NoError(t, err)

	assert.Contains(t, output, "showing 2 of 1008")
	assert.Contains(t, output, "#001")
	assert.Contains(t, output, "Bulbasaur")
	assert.Contains(t, output, "#???")
	assert.Contains(t, output, "More")
}

func TestRenderEmptyList(t *testing.T) {
	t.Parallel()

	output, err := Render(ListContent{})
	require.NoError(t, err)
	assert.Contains(t, output, "No Pokémon to show.")
	assert.NotContains(t, output, "More")
}

func TestRenderSuggestions(t *testing.T) {
	t.Parallel()

	output, err := Render(SuggestionContent{
		Query:   "SAUR",
		Matches: []domain.PokemonSummary{{Name: "bulbasaur"}, {Name: "ivysaur"}},
	})
	require.NoError(t, err)
	assert.Contains(t, output, "bulba")
	assert.Contains(t, output, "ivy")

	output, err = Render(SuggestionContent{Query: "zzz"})
	require.NoError(t, err)
	assert.Contains(t, output, "No suggestions.")
}

func TestRenderNotFound(t *testing.T) {
	t.Parallel()

	output, err := Render(NotFoundContent{Ref: "999999"})
	require.NoError(t, err)
	assert.Contains(t, output, "999999 ...NOT FOUND")
}

func TestRenderSession(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	output, err := Render(SessionContent{
		Session: domain.UserSession{
			UID:         "uid-42",
			DisplayName: "Ash Ketchum",
			Provider:    "google.com",
			SignedInAt:  now.Add(-time.Hour),
		},
		ExpiresAt: now.Add(-time.Minute),
		Now:       now,
	})
	require.NoError(t, err)

	assert.Contains(t, output, "Ash Ketchum")
	assert.Contains(t, output, "google.com")
	assert.Contains(t, output, "n/a")
	assert.Contains(t, output, "[expired]")

	output, err = Render(SessionContent{})
	require.NoError(t, err)
	assert.Contains(t, output, "Not signed in")
}

func TestRenderStatBarScalesToMaxBaseStat(t *testing.T) {
	t.Parallel()

	s := newStyles()
	assert.Contains(t, renderStatBar(255, 10, "grass", s), "==========")
	assert.Contains(t, renderStatBar(0, 10, "grass", s), "----------")
	assert.Contains(t, renderStatBar(999, 10, "grass", s), "==========")
	assert.Empty(t, renderStatBar(10, 0, "grass", s))
}
