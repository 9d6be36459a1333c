package render

// Theme holds the emoji glyphs used to draw one floor band's terrain.
// Emoji carry their own colors, so bands are distinguished by glyph.
type Theme struct {
	Wall  string
	Floor string
	Door  string
}

// themes maps floorIndex/3 bands to tile sets, deepest band last.
var themes = []Theme{
	{Wall: "🧱", Floor: "🟫", Door: "🚪"},
	{Wall: "🪨", Floor: "🟦", Door: "🚪"},
	{Wall: "💀", Floor: "🟪", Door: "🚪"},
}

// ThemeFor returns the tile set for a floor index.
func ThemeFor(floorIndex int) Theme {
	band := floorIndex / 3
	if band < 0 {
		band = 0
	}
	if band >= len(themes) {
		band = len(themes) - 1
	}
	return themes[band]
}
