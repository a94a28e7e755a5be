package pokeapitest

const bulbasaurSprites = `{
  "back_default": "https://sprites.example/back/1.png",
  "back_female": null,
  "back_shiny": "https://sprites.example/back/shiny/1.png",
  "back_shiny_female": null,
  "front_default": "https://sprites.example/1.png",
  "front_female": null,
  "front_shiny": "https://sprites.example/shiny/1.png",
  "front_shiny_female": null,
  "other": {"official-artwork": {"front_default": "https://sprites.example/art/1.png"}},
  "versions": {"generation-i": {"red-blue": {"front_default": "https://sprites.example/rb/1.png"}}}
}`

// Starters is a fixture of the first generation grass and fire lines.
func Starters() []Pokemon {
	return []Pokemon{
		{
			ID:     1,
			Name:   "bulbasaur",
			Types:  []string{"grass", "poison"},
			Weight: 69,
			Height: 7,
			Stats: []Stat{
				{Name: "hp", Value: 45},
				{Name: "attack", Value: 49},
				{Name: "defense", Value: 49},
				{Name: "special-attack", Value: 65},
				{Name: "special-defense", Value: 65},
				{Name: "speed", Value: 45},
			},
			Abilities: []string{"overgrow", "chlorophyll"},
			Sprites:   bulbasaurSprites,
			FlavorTexts: []FlavorText{
				{Text: "A strange seed was\nplanted on its\fback at birth.", Language: "en"},
				{Text: "Dès qu'il est né, il a une étrange graine.", Language: "fr"},
			},
		},
		{
			ID:     2,
			Name:   "ivysaur",
			Types:  []string{"grass", "poison"},
			Weight: 130,
			Height: 10,
			Stats: []Stat{
				{Name: "speed", Value: 60},
				{Name: "special-defense", Value: 80},
				{Name: "special-attack", Value: 80},
				{Name: "defense", Value: 63},
				{Name: "attack", Value: 62},
				{Name: "hp", Value: 60},
			},
			Abilities: []string{"overgrow", "chlorophyll"},
			FlavorTexts: []FlavorText{
				{Text: "When the bulb on\nits back grows large, it appears to lose the ability to stand.", Language: "en"},
			},
		},
		{
			ID:     3,
			Name:   "venusaur",
			Types:  []string{"grass", "poison"},
			Weight: 1000,
			Height: 20,
			Stats: []Stat{
				{Name: "hp", Value: 80},
				{Name: "attack", Value: 82},
			},
			Abilities: []string{"overgrow", "chlorophyll", "thick-fat"},
		},
		{
			ID:     4,
			Name:   "charmander",
			Types:  []string{"fire"},
			Weight: 85,
			Height: 6,
			Stats: []Stat{
				{Name: "hp", Value: 39},
				{Name: "attack", Value: 52},
				{Name: "defense", Value: 43},
				{Name: "special-attack", Value: 60},
				{Name: "special-defense", Value: 50},
				{Name: "speed", Value: 65},
			},
			Abilities: []string{"blaze", "solar-power"},
			FlavorTexts: []FlavorText{
				{Text: "Obviously prefers\nhot places.", Language: "en"},
				{Text: "The flame on its tail shows the strength of its life force.", Language: "en"},
			},
		},
	}
}
