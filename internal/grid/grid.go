package grid

// Kind classifies what a room cell is used for.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindNormal
	KindSafe
	KindBoss
	KindTreasure
	KindChallenge
)

// String returns a short lowercase name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindSafe:
		return "safe"
	case KindBoss:
		return "boss"
	case KindTreasure:
		return "treasure"
	case KindChallenge:
		return "challenge"
	default:
		return "empty"
	}
}

// Dir identifies one of the four door directions of a cell.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// Opposite returns the reciprocal direction (Up<->Down, Left<->Right).
func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Offset returns the grid-coordinate delta for the direction.
func (d Dir) Offset() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

// Dirs lists all four directions in a fixed evaluation order.
var Dirs = [4]Dir{DirUp, DirDown, DirLeft, DirRight}

// Cell is one slot in the room grid. Doors is indexed by Dir and only ever
// open toward an occupied neighbor.
type Cell struct {
	Kind     Kind
	Occupied bool
	Doors    [4]bool
}

// Grid is the logical room graph for one floor: a Size×Size array of cells
// plus the door edge set connecting occupied neighbors.
type Grid struct {
	Size  int
	Cells []Cell
}

// New returns an empty Size×Size grid with no occupied cells.
func New(size int) *Grid {
	return &Grid{Size: size, Cells: make([]Cell, size*size)}
}

// Index converts grid coordinates to a cell index (row-major).
func (g *Grid) Index(x, y int) int { return y*g.Size + x }

// Coords converts a cell index back to grid coordinates.
func (g *Grid) Coords(i int) (int, int) { return i % g.Size, i / g.Size }

// InBounds reports whether (x, y) is a valid grid coordinate.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Size && y >= 0 && y < g.Size
}

// At returns a pointer to the cell at (x, y). Panics if out of bounds.
func (g *Grid) At(x, y int) *Cell { return &g.Cells[g.Index(x, y)] }

// Occupy marks (x, y) occupied with the given kind.
func (g *Grid) Occupy(x, y int, kind Kind) {
	c := g.At(x, y)
	c.Occupied = true
	c.Kind = kind
}

// OpenDoor opens the edge from (x, y) toward d and the reciprocal edge on the
// neighbor, keeping the edge set symmetric. It refuses to open an edge unless
// both cells are in bounds and occupied.
func (g *Grid) OpenDoor(x, y int, d Dir) bool {
	dx, dy := d.Offset()
	nx, ny := x+dx, y+dy
	if !g.InBounds(x, y) || !g.InBounds(nx, ny) {
		return false
	}
	if !g.At(x, y).Occupied || !g.At(nx, ny).Occupied {
		return false
	}
	g.At(x, y).Doors[d] = true
	g.At(nx, ny).Doors[d.Opposite()] = true
	return true
}

// OccupiedIndices returns the indices of all occupied cells in ascending
// order. Ascending index is the tie-break order used throughout generation.
func (g *Grid) OccupiedIndices() []int {
	var out []int
	for i := range g.Cells {
		if g.Cells[i].Occupied {
			out = append(out, i)
		}
	}
	return out
}

// CountKind returns how many occupied cells carry the given kind.
func (g *Grid) CountKind(kind Kind) int {
	n := 0
	for i := range g.Cells {
		if g.Cells[i].Occupied && g.Cells[i].Kind == kind {
			n++
		}
	}
	return n
}

// Distances runs a BFS over open door edges from the start cell and returns
// the hop count to every reachable occupied cell, including start at 0.
func (g *Grid) Distances(start int) map[int]int {
	dist := map[int]int{start: 0}
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cx, cy := g.Coords(cur)
		for _, d := range Dirs {
			if !g.Cells[cur].Doors[d] {
				continue
			}
			dx, dy := d.Offset()
			ni := g.Index(cx+dx, cy+dy)
			if _, seen := dist[ni]; seen {
				continue
			}
			dist[ni] = dist[cur] + 1
			queue = append(queue, ni)
		}
	}
	return dist
}

// Connected reports whether every occupied cell is reachable from entry via
// open door edges.
func (g *Grid) Connected(entry int) bool {
	if !g.Cells[entry].Occupied {
		return false
	}
	dist := g.Distances(entry)
	for _, i := range g.OccupiedIndices() {
		if _, ok := dist[i]; !ok {
			return false
		}
	}
	return true
}

// SymmetricDoors reports whether every open edge has its reciprocal edge
// open on the neighboring cell. A generated grid must always satisfy this.
func (g *Grid) SymmetricDoors() bool {
	for i := range g.Cells {
		x, y := g.Coords(i)
		for _, d := range Dirs {
			if !g.Cells[i].Doors[d] {
				continue
			}
			dx, dy := d.Offset()
			if !g.InBounds(x+dx, y+dy) {
				return false
			}
			if !g.At(x+dx, y+dy).Doors[d.Opposite()] {
				return false
			}
		}
	}
	return true
}
