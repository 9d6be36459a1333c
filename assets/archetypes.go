package assets

import "infinite-tower/internal/ai"

// Archetype describes one enemy template referenced by the floor generator.
type Archetype struct {
	Ref         string
	Name        string
	Glyph       string
	Personality ai.Personality
	MaxHealth   float64
	Damage      float64
	IsBoss      bool
}

// Archetypes maps archetype refs to their templates. Refs come from the
// generator's spawn descriptors; an unknown ref is a content bug.
var Archetypes = map[string]Archetype{
	"skitterling": {
		Ref:         "skitterling",
		Name:        "Skitterling",
		Glyph:       "🦂",
		Personality: ai.Aggressive,
		MaxHealth:   20,
		Damage:      4,
	},
	"husk": {
		Ref:         "husk",
		Name:        "Husk",
		Glyph:       "🧟",
		Personality: ai.Defensive,
		MaxHealth:   35,
		Damage:      6,
	},
	"stalker": {
		Ref:         "stalker",
		Name:        "Stalker",
		Glyph:       "🐆",
		Personality: ai.Coward,
		MaxHealth:   28,
		Damage:      9,
	},
	"sentinel": {
		Ref:         "sentinel",
		Name:        "Sentinel",
		Glyph:       "🗿",
		Personality: ai.Tank,
		MaxHealth:   70,
		Damage:      8,
	},
	"warden": {
		Ref:         "warden",
		Name:        "Warden",
		Glyph:       "👁️",
		Personality: ai.Ranger,
		MaxHealth:   40,
		Damage:      11,
	},
	"brute": {
		Ref:         "brute",
		Name:        "Brute",
		Glyph:       "🦍",
		Personality: ai.Tank,
		MaxHealth:   90,
		Damage:      13,
	},
	"ravager": {
		Ref:         "ravager",
		Name:        "Ravager",
		Glyph:       "🐲",
		Personality: ai.Aggressive,
		MaxHealth:   75,
		Damage:      16,
	},
	"husk-alpha": {
		Ref:         "husk-alpha",
		Name:        "Husk Alpha",
		Glyph:       "🧟‍♂️",
		Personality: ai.Tank,
		MaxHealth:   180,
		Damage:      14,
		IsBoss:      true,
	},
	"gate-warden": {
		Ref:         "gate-warden",
		Name:        "Gate Warden",
		Glyph:       "🛡️",
		Personality: ai.Ranger,
		MaxHealth:   240,
		Damage:      18,
		IsBoss:      true,
	},
	"tower-tyrant": {
		Ref:         "tower-tyrant",
		Name:        "Tower Tyrant",
		Glyph:       "👑",
		Personality: ai.Aggressive,
		MaxHealth:   320,
		Damage:      24,
		IsBoss:      true,
	},
}

// ArchetypeFor looks up an archetype template by ref.
func ArchetypeFor(ref string) (Archetype, bool) {
	a, ok := Archetypes[ref]
	return a, ok
}
