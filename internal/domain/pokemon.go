package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const artworkURLFormat = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"

type PokemonSummary struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// ID extracts the numeric id from the trailing path segment of the resource URL.
// It returns 0 when the URL does not end in a number.
func (s PokemonSummary) ID() int {
	trimmed := strings.TrimRight(s.URL, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return 0
	}

	id, err := strconv.Atoi(trimmed[idx+1:])
	if err != nil || id <= 0 {
		return 0
	}

	return id
}

type NamedResource struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

type DamageRelations struct {
	DoubleDamageFrom []NamedResource `json:"double_damage_from" yaml:"double_damage_from"`
	DoubleDamageTo   []NamedResource `json:"double_damage_to" yaml:"double_damage_to"`
	HalfDamageFrom   []NamedResource `json:"half_damage_from" yaml:"half_damage_from"`
	HalfDamageTo     []NamedResource `json:"half_damage_to" yaml:"half_damage_to"`
	NoDamageFrom     []NamedResource `json:"no_damage_from" yaml:"no_damage_from"`
	NoDamageTo       []NamedResource `json:"no_damage_to" yaml:"no_damage_to"`
}

// TypeDamageRelations pairs a type with its upstream damage relations.
// Relations is nil when the fetch failed and the detail was built in degraded mode.
type TypeDamageRelations struct {
	Type      string           `json:"type" yaml:"type"`
	Relations *DamageRelations `json:"relations" yaml:"relations"`
}

type PokemonDetail struct {
	ID              int                   `json:"id" yaml:"id"`
	Name            string                `json:"name" yaml:"name"`
	Types           []string              `json:"types" yaml:"types"`
	WeightHg        int                   `json:"weight_hg" yaml:"weight_hg"`
	HeightDm        int                   `json:"height_dm" yaml:"height_dm"`
	Weight          float64               `json:"weight_kg" yaml:"weight_kg"`
	Height          float64               `json:"height_m" yaml:"height_m"`
	Stats           []Stat                `json:"stats" yaml:"stats"`
	Abilities       []string              `json:"abilities" yaml:"abilities"`
	Sprites         []string              `json:"sprites" yaml:"sprites"`
	Description     string                `json:"description,omitempty" yaml:"description,omitempty"`
	Previous        *string               `json:"previous,omitempty" yaml:"previous,omitempty"`
	Next            *string               `json:"next,omitempty" yaml:"next,omitempty"`
	DamageRelations []TypeDamageRelations `json:"damage_relations" yaml:"damage_relations"`
	ArtworkURL      string                `json:"artwork_url" yaml:"artwork_url"`
}

func (d PokemonDetail) Number() string {
	return FormatNumber(d.ID)
}

// PrimaryType returns the first declared type, which drives the theme of the view.
func (d PokemonDetail) PrimaryType() string {
	if len(d.Types) == 0 {
		return ""
	}
	return d.Types[0]
}

func ArtworkURL(id int) string {
	return fmt.Sprintf(artworkURLFormat, id)
}

// FormatNumber renders an id as a Pokédex number padded to three digits.
func FormatNumber(id int) string {
	return fmt.Sprintf("#%03d", id)
}

// ScaleTenths converts upstream hectograms or decimetres to kilograms or metres.
func ScaleTenths(v int) float64 {
	return float64(v) / 10
}

func FormatAbilities(names []string) []string {
	limit := len(names)
	if limit > maxAbilities {
		limit = maxAbilities
	}

	abilities := make([]string, 0, limit)
	for _, name := range names[:limit] {
		abilities = append(abilities, strings.ReplaceAll(name, "-", " "))
	}

	return abilities
}

const maxAbilities = 2

var flavorTextBreaks = strings.NewReplacer("\r", " ", "\n", " ", "\f", " ")

func NormalizeFlavorText(text string) string {
	return flavorTextBreaks.Replace(text)
}
