package application

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/pokeapitest"
	"github.com/bnema/pokedex-cli/internal/ports"
	"github.com/bnema/pokedex-cli/internal/ports/mocks"
)

type fixedRandom int

func (r fixedRandom) IntN(n int) int {
	if int(r) >= n {
		return n - 1
	}
	return int(r)
}

func TestLoadDetailFirstEntry(t *testing.T) {
	t.Parallel()

	_, client := newFixtureClient(t, pokeapitest.Options{})
	service := NewDetailService(client, nil, WithRandom(fixedRandom(0)))

	detail, err := service.LoadDetail(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, 1, detail.ID)
	assert.Equal(t, "bulbasaur", detail.Name)
	assert.Equal(t, "#001", detail.Number())
	assert.Equal(t, []string{"grass", "poison"}, detail.Types)
	assert.InDelta(t, 6.9, detail.Weight, 1e-9)
	assert.InDelta(t, 0.7, detail.Height, 1e-9)
	assert.Equal(t, 69, detail.WeightHg)
	assert.Equal(t, 7, detail.HeightDm)
	assert.Equal(t, []string{"overgrow", "chlorophyll"}, detail.Abilities)
	assert.Equal(t, "A strange seed was planted on its back at birth.", detail.Description)
	assert.Nil(t, detail.Previous)
	require.NotNil(t, detail.Next)
	assert.Equal(t, "ivysaur", *detail.Next)
	assert.Equal(t, domain.ArtworkURL(1), detail.ArtworkURL)

	assert.Equal(t, []string{
		"https://sprites.example/back/1.png",
		"https://sprites.example/back/shiny/1.png",
		"https://sprites.example/1.png",
		"https://sprites.example/shiny/1.png",
	}, detail.Sprites)

	require.Len(t, detail.DamageRelations, 2)
	assert.Equal(t, "grass", detail.DamageRelations[0].Type)
	assert.Equal(t, "poison", detail.DamageRelations[1].Type)
	require.NotNil(t, detail.DamageRelations[0].Relations)
	assert.Equal(t, "fire", detail.DamageRelations[0].Relations.DoubleDamageFrom[0].Name)
	require.NotNil(t, detail.DamageRelations[1].Relations)
	assert.Equal(t, "steel", detail.DamageRelations[1].Relations.NoDamageTo[0].Name)
}

func TestLoadDetailAdjacencyInTheMiddleAndAtTheEnd(t *testing.T) {
	t.Parallel()

	_, client := newFixtureClient(t, pokeapitest.Options{})
	service := NewDetailService(client, nil)

	middle, err := service.LoadDetail(context.Background(), "ivysaur")
	require.NoError(t, err)
	require.NotNil(t, middle.Previous)
	require.NotNil(t, middle.Next)
	assert.Equal(t, "bulbasaur", *middle.Previous)
	assert.Equal(t, "venusaur", *middle.Next)

	last, err := service.LoadDetail(context.Background(), "charmander")
	require.NoError(t, err)
	require.NotNil(t, last.Previous)
	assert.Equal(t, "venusaur", *last.Previous)
	assert.Nil(t, last.Next)
}

func TestLoadDetailStatsKeyedByName(t *testing.T) {
	t.Parallel()

	_, client := newFixtureClient(t, pokeapitest.Options{})
	service := NewDetailService(client, nil)

	detail, err := service.LoadDetail(context.Background(), "2")
	require.NoError(t, err)

	want := []domain.Stat{
		{Name: "Hit Point", BaseStat: 60},
		{Name: "Attack", BaseStat: 62},
		{Name: "Defense", BaseStat: 63},
		{Name: "Special Attack", BaseStat: 80},
		{Name: "Special Defense", BaseStat: 80},
		{Name: "Speed", BaseStat: 60},
	}
	if diff := cmp.Diff(want, detail.Stats); diff != "" {
		t.Fatalf("stats mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDetailZeroFillsMissingStatsAndTrimsAbilities(t *testing.T) {
	t.Parallel()

	_, client := newFixtureClient(t, pokeapitest.Options{})
	service := NewDetailService(client, nil)

	detail, err := service.LoadDetail(context.Background(), "venusaur")
	require.NoError(t, err)

	require.Len(t, detail.Stats, 6)
	assert.Equal(t, domain.Stat{Name: "Hit Point", BaseStat: 80}, detail.Stats[0])
	assert.Equal(t, domain.Stat{Name: "Speed", BaseStat: 0}, detail.Stats[5])
	assert.Len(t, detail.Abilities, 2)
	for _, ability := range detail.Abilities {
		assert.NotContains(t, ability, "-")
	}
	assert.Empty(t, detail.Description)
	assert.Empty(t, detail.Sprites)
}

func TestLoadDetailPicksFlavorTextWithRandom(t *testing.T) {
	t.Parallel()

	_, client := newFixtureClient(t, pokeapitest.Options{})

	first, err := NewDetailService(client, nil, WithRandom(fixedRandom(0))).LoadDetail(context.Background(), "charmander")
	require.NoError(t, err)
	second, err := NewDetailService(client, nil, WithRandom(fixedRandom(1))).LoadDetail(context.Background(), "charmander")
	require.NoError(t, err)

	assert.Equal(t, "Obviously prefers hot places.", first.Description)
	assert.Equal(t, "The flame on its tail shows the strength of its life force.", second.Description)
}

func TestLoadDetailUnknownReferenceIsNotFound(t *testing.T) {
	t.Parallel()

	server, client := newFixtureClient(t, pokeapitest.Options{})
	service := NewDetailService(client, nil)

	_, err := service.LoadDetail(context.Background(), "999999")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPokemonNotFound)
	assert.True(t, IsNotFound(err))
	assert.Zero(t, server.Hits("/api/v2/pokemon-species/999999/"))
}

func TestLoadDetailEmptyRecordIsNotFound(t *testing.T) {
	t.Parallel()

	api := mocks.NewMockPokemonAPI(t)
	api.On("GetPokemon", mock.Anything, "ghost").Return(ports.PokemonRecord{}, nil).Once()

	_, err := NewDetailService(api, nil).LoadDetail(context.Background(), " ghost ")
	assert.ErrorIs(t, err, domain.ErrPokemonNotFound)
}

func TestLoadDetailPartialFailurePolicies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts pokeapitest.Options
	}{
		{name: "types", opts: pokeapitest.Options{FailTypes: true}},
		{name: "species", opts: pokeapitest.Options{FailSpecies: true}},
		{name: "adjacency", opts: pokeapitest.Options{FailIndex: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, client := newFixtureClient(t, tt.opts)

			abort := NewDetailService(client, nil, WithPartialFailurePolicy(PartialFailureAbort))
			_, err := abort.LoadDetail(context.Background(), "bulbasaur")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUpstream)

			degrade := NewDetailService(client, nil)
			detail, err := degrade.LoadDetail(context.Background(), "bulbasaur")
			require.NoError(t, err)
			assert.Equal(t, "bulbasaur", detail.Name)
			assert.Len(t, detail.Stats, 6)

			switch tt.name {
			case "types":
				require.Len(t, detail.DamageRelations, 2)
				assert.Nil(t, detail.DamageRelations[0].Relations)
				assert.Equal(t, "grass", detail.DamageRelations[0].Type)
			case "species":
				assert.Empty(t, detail.Description)
			case "adjacency":
				assert.Nil(t, detail.Previous)
				assert.Nil(t, detail.Next)
			}
		})
	}
}

func TestParsePartialFailurePolicy(t *testing.T) {
	t.Parallel()

	policy, err := ParsePartialFailurePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PartialFailureDegrade, policy)

	policy, err = ParsePartialFailurePolicy(" Abort ")
	require.NoError(t, err)
	assert.Equal(t, PartialFailureAbort, policy)

	_, err = ParsePartialFailurePolicy("retry")
	require.Error(t, err)
}

func TestLoadTrackedDiscardsSupersededResponse(t *testing.T) {
	t.Parallel()

	tracker := &Tracker{}
	api := mocks.NewMockPokemonAPI(t)
	api.On("GetPokemon", mock.Anything, "bulbasaur").
		Run(func(mock.Arguments) { tracker.Begin("ivysaur") }).
		Return(ports.PokemonRecord{}, domain.ErrPokemonNotFound).
		Once()

	_, err := NewDetailService(api, nil).LoadTracked(context.Background(), tracker, "bulbasaur")
	assert.ErrorIs(t, err, domain.ErrStaleResponse)
	assert.Equal(t, "ivysaur", tracker.Current())
}

func TestLoadTrackedReturnsLatestResponse(t *testing.T) {
	t.Parallel()

	_, client := newFixtureClient(t, pokeapitest.Options{})
	tracker := &Tracker{}

	detail, err := NewDetailService(client, nil).LoadTracked(context.Background(), tracker, "charmander")
	require.NoError(t, err)
	assert.Equal(t, 4, detail.ID)
}
