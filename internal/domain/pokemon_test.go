package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleTenths(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 6.9, ScaleTenths(69), 1e-9)
	assert.InDelta(t, 0.7, ScaleTenths(7), 1e-9)
	assert.Zero(t, ScaleTenths(0))
}

func TestFormatAbilitiesTruncatesAndReplacesHyphens(t *testing.T) {
	t.Parallel()

	got := FormatAbilities([]string{"solar-power", "blaze", "lightning-rod"})
	assert.Equal(t, []string{"solar power", "blaze"}, got)
	for _, ability := range got {
		assert.NotContains(t, ability, "-")
	}

	assert.Empty(t, FormatAbilities(nil))
}

func TestNormalizeFlavorText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A strange seed was planted", NormalizeFlavorText("A strange\nseed\fwas\rplanted"))
}

func TestFormatNumberPadsToThreeDigits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#001", FormatNumber(1))
	assert.Equal(t, "#025", FormatNumber(25))
	assert.Equal(t, "#1008", FormatNumber(1008))
}

func TestNormalizeStatsUsesNamesNotPositions(t *testing.T) {
	t.Parallel()

	stats, missing := NormalizeStats(map[StatKey]int{
		StatSpeed:           45,
		StatHP:              45,
		StatSpecialDefense:  65,
		StatAttack:          49,
		StatSpecialAttack:   65,
		StatDefense:         49,
		StatKey("accuracy"): 100,
	})

	want := []Stat{
		{Name: "Hit Point", BaseStat: 45},
		{Name: "Attack", BaseStat: 49},
		{Name: "Defense", BaseStat: 49},
		{Name: "Special Attack", BaseStat: 65},
		{Name: "Special Defense", BaseStat: 65},
		{Name: "Speed", BaseStat: 45},
	}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Fatalf("NormalizeStats() mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, missing)
}

func TestNormalizeStatsZeroFillsMissing(t *testing.T) {
	t.Parallel()

	stats, missing := NormalizeStats(map[StatKey]int{StatHP: 10})
	require.Len(t, stats, 6)
	assert.Equal(t, 10, stats[0].BaseStat)
	assert.Equal(t, []StatKey{StatAttack, StatDefense, StatSpecialAttack, StatSpecialDefense, StatSpeed}, missing)
}

func TestThemeForKnownAndUnknownTypes(t *testing.T) {
	t.Parallel()

	for _, name := range TypeNames() {
		theme, err := ThemeFor(string(name))
		require.NoError(t, err, name)
		assert.Equal(t, name, theme.Type)
		assert.NotEmpty(t, theme.Background)
	}

	theme, err := ThemeFor(" Fire ")
	require.NoError(t, err)
	assert.Equal(t, TypeFire, theme.Type)

	_, err = ThemeFor("shadow")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownType))
}

func TestDetailPrimaryType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "grass", PokemonDetail{Types: []string{"grass", "poison"}}.PrimaryType())
	assert.Equal(t, "", PokemonDetail{}.PrimaryType())
}
