package domain

type StatKey string

const (
	StatHP             StatKey = "hp"
	StatAttack         StatKey = "attack"
	StatDefense        StatKey = "defense"
	StatSpecialAttack  StatKey = "special-attack"
	StatSpecialDefense StatKey = "special-defense"
	StatSpeed          StatKey = "speed"
)

// StatOrder is the fixed display order of the six base stats.
var StatOrder = []StatKey{
	StatHP,
	StatAttack,
	StatDefense,
	StatSpecialAttack,
	StatSpecialDefense,
	StatSpeed,
}

func (k StatKey) Label() string {
	switch k {
	case StatHP:
		return "Hit Point"
	case StatAttack:
		return "Attack"
	case StatDefense:
		return "Defense"
	case StatSpecialAttack:
		return "Special Attack"
	case StatSpecialDefense:
		return "Special Defense"
	case StatSpeed:
		return "Speed"
	default:
		return string(k)
	}
}

type Stat struct {
	Name     string `json:"name" yaml:"name"`
	BaseStat int    `json:"base_stat" yaml:"base_stat"`
}

// NormalizeStats maps upstream stats keyed by their own name onto the six display
// labels in StatOrder. Unknown names are ignored; stats absent upstream are
// zero-filled and returned in missing.
func NormalizeStats(upstream map[StatKey]int) (stats []Stat, missing []StatKey) {
	stats = make([]Stat, 0, len(StatOrder))
	for _, key := range StatOrder {
		value, ok := upstream[key]
		if !ok {
			missing = append(missing, key)
		}
		stats = append(stats, Stat{Name: key.Label(), BaseStat: value})
	}

	return stats, missing
}
