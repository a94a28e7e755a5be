package pokeapi

import (
	"encoding/json"

	"github.com/bnema/pokedex-cli/internal/domain"
	"github.com/bnema/pokedex-cli/internal/ports"
)

type pokemonPayload struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Weight int    `json:"weight"`
	Height int    `json:"height"`
	Types  []struct {
		Slot int                  `json:"slot"`
		Type domain.NamedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int                  `json:"base_stat"`
		Stat     domain.NamedResource `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability domain.NamedResource `json:"ability"`
	} `json:"abilities"`
	Sprites json.RawMessage `json:"sprites"`
}

func (p pokemonPayload) toRecord(sprites []ports.SpriteField) ports.PokemonRecord {
	record := ports.PokemonRecord{
		ID:        p.ID,
		Name:      p.Name,
		Weight:    p.Weight,
		Height:    p.Height,
		Types:     make([]domain.NamedResource, 0, len(p.Types)),
		Stats:     make([]ports.StatRecord, 0, len(p.Stats)),
		Abilities: make([]string, 0, len(p.Abilities)),
		Sprites:   sprites,
	}

	for _, t := range p.Types {
		record.Types = append(record.Types, t.Type)
	}
	for _, s := range p.Stats {
		record.Stats = append(record.Stats, ports.StatRecord{Name: s.Stat.Name, BaseStat: s.BaseStat})
	}
	for _, a := range p.Abilities {
		record.Abilities = append(record.Abilities, a.Ability.Name)
	}

	return record
}

type indexPayload struct {
	Count    int                     `json:"count"`
	Next     *string                 `json:"next"`
	Previous *string                 `json:"previous"`
	Results  []domain.PokemonSummary `json:"results"`
}

type typePayload struct {
	DamageRelations domain.DamageRelations `json:"damage_relations"`
}

type speciesPayload struct {
	FlavorTextEntries []struct {
		FlavorText string `json:"flavor_text"`
		Language   struct {
			Name string `json:"name"`
		} `json:"language"`
	} `json:"flavor_text_entries"`
}
