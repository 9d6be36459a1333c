package tilemap

// Rect is an axis-aligned rectangle in tile coordinates (inclusive edges).
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X1 && x <= r.X2 && y >= r.Y1 && y <= r.Y2
}

// TileMap holds the dense tile grid for one floor plus the rectangle each
// room occupies, keyed by room grid index. It is immutable once generated;
// a new floor gets a new TileMap.
type TileMap struct {
	Width, Height int
	Tiles         [][]Tile
	Rooms         map[int]Rect
}

// New creates a TileMap filled with walls.
func New(width, height int) *TileMap {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = MakeWall()
		}
	}
	return &TileMap{
		Width:  width,
		Height: height,
		Tiles:  tiles,
		Rooms:  make(map[int]Rect),
	}
}

// InBounds reports whether (x, y) is within the map boundaries.
func (m *TileMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// At returns a pointer to the tile at (x, y). Panics if out of bounds.
func (m *TileMap) At(x, y int) *Tile {
	return &m.Tiles[y][x]
}

// Set replaces the tile at (x, y).
func (m *TileMap) Set(x, y int, t Tile) {
	m.Tiles[y][x] = t
}

// IsWalkable returns true when (x, y) is in bounds and walkable.
func (m *TileMap) IsWalkable(x, y int) bool {
	if !m.InBounds(x, y) {
		return false
	}
	return m.Tiles[y][x].Walkable
}

// RoomRect returns the tile rectangle of the room with the given grid index.
func (m *TileMap) RoomRect(roomID int) (Rect, bool) {
	r, ok := m.Rooms[roomID]
	return r, ok
}

// RoomAt returns the grid index of the room containing (x, y), or -1 when
// the position is in no room (a wall or door border).
func (m *TileMap) RoomAt(x, y int) int {
	for id, r := range m.Rooms {
		if r.Contains(x, y) {
			return id
		}
	}
	return -1
}
