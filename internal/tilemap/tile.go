package tilemap

// TileKind identifies the type of a map tile.
type TileKind uint8

const (
	TileWall TileKind = iota
	TileFloor
	TileDoor
)

// Tile holds the kind and passability for one map cell.
type Tile struct {
	Kind     TileKind
	Walkable bool
}

// MakeWall returns a blocking wall tile.
func MakeWall() Tile {
	return Tile{Kind: TileWall, Walkable: false}
}

// MakeFloor returns a passable floor tile.
func MakeFloor() Tile {
	return Tile{Kind: TileFloor, Walkable: true}
}

// MakeDoor returns a door tile, passable from both sides.
func MakeDoor() Tile {
	return Tile{Kind: TileDoor, Walkable: true}
}
