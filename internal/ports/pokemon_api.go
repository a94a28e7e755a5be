package ports

import (
	"context"

	"github.com/bnema/pokedex-cli/internal/domain"
)

// PokemonAPI is the read-only remote source of all domain data.
type PokemonAPI interface {
	GetPokemon(ctx context.Context, ref string) (PokemonRecord, error)
	ListPokemon(ctx context.Context, limit, offset int) (IndexPage, error)
	// GetIndexPage follows a next/previous link returned by ListPokemon.
	GetIndexPage(ctx context.Context, pageURL string) (IndexPage, error)
	GetDamageRelations(ctx context.Context, typeURL string) (domain.DamageRelations, error)
	GetSpecies(ctx context.Context, id int) (SpeciesRecord, error)
}

type PokemonRecord struct {
	ID        int
	Name      string
	Types     []domain.NamedResource
	Weight    int
	Height    int
	Stats     []StatRecord
	Abilities []string
	Sprites   []SpriteField
}

type StatRecord struct {
	Name     string
	BaseStat int
}

// SpriteField is one entry of the upstream sprites object in document order.
// Value is only meaningful when IsString is set; nested groups and nulls are not strings.
type SpriteField struct {
	Key      string
	Value    string
	IsString bool
}

type IndexPage struct {
	Count    int
	Results  []domain.PokemonSummary
	Next     string
	Previous string
}

type SpeciesRecord struct {
	FlavorTextEntries []FlavorTextEntry
}

type FlavorTextEntry struct {
	Text     string
	Language string
}
