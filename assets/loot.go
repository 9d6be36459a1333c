package assets

// LootDef describes one loot tier referenced by spawn descriptors.
type LootDef struct {
	Ref   string
	Name  string
	Glyph string
	Value int
}

var LootTable = map[string]LootDef{
	"loot/common": {
		Ref:   "loot/common",
		Name:  "Tarnished Cache",
		Glyph: "🪙",
		Value: 10,
	},
	"loot/uncommon": {
		Ref:   "loot/uncommon",
		Name:  "Sealed Strongbox",
		Glyph: "📦",
		Value: 35,
	},
	"loot/rare": {
		Ref:   "loot/rare",
		Name:  "Gilded Reliquary",
		Glyph: "💎",
		Value: 120,
	},
}

// LootFor looks up a loot tier by ref.
func LootFor(ref string) (LootDef, bool) {
	d, ok := LootTable[ref]
	return d, ok
}
