package domain

import (
	"fmt"
	"strings"
)

type TypeName string

const (
	TypeNormal   TypeName = "normal"
	TypeFire     TypeName = "fire"
	TypeWater    TypeName = "water"
	TypeElectric TypeName = "electric"
	TypeGrass    TypeName = "grass"
	TypeIce      TypeName = "ice"
	TypeFighting TypeName = "fighting"
	TypePoison   TypeName = "poison"
	TypeGround   TypeName = "ground"
	TypeFlying   TypeName = "flying"
	TypePsychic  TypeName = "psychic"
	TypeBug      TypeName = "bug"
	TypeRock     TypeName = "rock"
	TypeGhost    TypeName = "ghost"
	TypeDragon   TypeName = "dragon"
	TypeDark     TypeName = "dark"
	TypeSteel    TypeName = "steel"
	TypeFairy    TypeName = "fairy"
)

// Theme is the presentation token set derived from a type.
type Theme struct {
	Type       TypeName
	Background string
	Foreground string
}

var themes = map[TypeName]Theme{
	TypeNormal:   {Type: TypeNormal, Background: "#A8A77A", Foreground: "#1F1F1F"},
	TypeFire:     {Type: TypeFire, Background: "#EE8130", Foreground: "#1F1F1F"},
	TypeWater:    {Type: TypeWater, Background: "#6390F0", Foreground: "#F5F5F5"},
	TypeElectric: {Type: TypeElectric, Background: "#F7D02C", Foreground: "#1F1F1F"},
	TypeGrass:    {Type: TypeGrass, Background: "#7AC74C", Foreground: "#1F1F1F"},
	TypeIce:      {Type: TypeIce, Background: "#96D9D6", Foreground: "#1F1F1F"},
	TypeFighting: {Type: TypeFighting, Background: "#C22E28", Foreground: "#F5F5F5"},
	TypePoison:   {Type: TypePoison, Background: "#A33EA1", Foreground: "#F5F5F5"},
	TypeGround:   {Type: TypeGround, Background: "#E2BF65", Foreground: "#1F1F1F"},
	TypeFlying:   {Type: TypeFlying, Background: "#A98FF3", Foreground: "#1F1F1F"},
	TypePsychic:  {Type: TypePsychic, Background: "#F95587", Foreground: "#F5F5F5"},
	TypeBug:      {Type: TypeBug, Background: "#A6B91A", Foreground: "#1F1F1F"},
	TypeRock:     {Type: TypeRock, Background: "#B6A136", Foreground: "#1F1F1F"},
	TypeGhost:    {Type: TypeGhost, Background: "#735797", Foreground: "#F5F5F5"},
	TypeDragon:   {Type: TypeDragon, Background: "#6F35FC", Foreground: "#F5F5F5"},
	TypeDark:     {Type: TypeDark, Background: "#705746", Foreground: "#F5F5F5"},
	TypeSteel:    {Type: TypeSteel, Background: "#B7B7CE", Foreground: "#1F1F1F"},
	TypeFairy:    {Type: TypeFairy, Background: "#D685AD", Foreground: "#1F1F1F"},
}

func ParseTypeName(raw string) (TypeName, error) {
	name := TypeName(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := themes[name]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}

	return name, nil
}

func ThemeFor(raw string) (Theme, error) {
	name, err := ParseTypeName(raw)
	if err != nil {
		return Theme{}, err
	}

	return themes[name], nil
}

func TypeNames() []TypeName {
	return []TypeName{
		TypeNormal, TypeFire, TypeWater, TypeElectric, TypeGrass, TypeIce,
		TypeFighting, TypePoison, TypeGround, TypeFlying, TypePsychic, TypeBug,
		TypeRock, TypeGhost, TypeDragon, TypeDark, TypeSteel, TypeFairy,
	}
}
