// Package floorgen builds one tower floor from a seed: a connected room
// graph, its rasterized tile layout, and the spawn descriptors that tell the
// spawn resolver what to place. Generation is a pure function of
// (seed, floorIndex, difficulty) — no global state, no clock.
package floorgen

import (
	"math/rand"

	"infinite-tower/internal/grid"
	"infinite-tower/internal/tilemap"
	"infinite-tower/internal/vec"
)

const (
	// GridSize is the fixed edge length of the room grid.
	GridSize = 5

	// RoomTileW and RoomTileH are the tile stride of one grid cell,
	// including its wall ring. Adjacent rooms butt wall-to-wall.
	RoomTileW = 13
	RoomTileH = 9

	// extraDoorChance is the probability of opening a door between two
	// adjacent occupied cells that the growth walk did not already link.
	// Growth-parent edges are always open, which keeps the graph connected
	// no matter how these rolls land.
	extraDoorChance = 0.9

	// maxGrowthAttempts bounds the randomized expansion before the
	// generator gives up and falls back to a minimum viable floor.
	maxGrowthAttempts = 400
)

// SpawnKind separates enemy spawns from loot spawns.
type SpawnKind uint8

const (
	SpawnEnemy SpawnKind = iota
	SpawnLoot
)

// SpawnDescriptor is a declarative request to place one enemy or loot
// instance. The generator produces them in room-index order and never
// mutates them afterwards; the spawn resolver consumes each exactly once.
type SpawnDescriptor struct {
	Kind             SpawnKind
	ArchetypeRef     string
	RoomID           int
	LocalPos         vec.Vec2 // tile coordinates relative to the room's origin
	DifficultyWeight float64
}

// FloorDescription is everything the generator emits for one floor. The
// grid, tile map, and spawn list are immutable once returned; regenerating
// a floor produces a fresh instance.
type FloorDescription struct {
	Seed       uint64
	FloorIndex int
	Difficulty float64

	Grid      *grid.Grid
	Tiles     *tilemap.TileMap
	Spawns    []SpawnDescriptor
	EntryRoom int
	BossRoom  int
}

// Generate builds the floor for the given seed, floor index, and difficulty.
// It never fails: a pathological seed degrades to a minimum viable floor of
// an entry room linked to a boss room.
func Generate(seed uint64, floorIndex int, difficulty float64) *FloorDescription {
	if difficulty < 0 {
		difficulty = 0
	}
	if floorIndex < 0 {
		floorIndex = 0
	}

	g := grid.New(GridSize)
	entry := g.Index(GridSize/2, GridSize/2)

	parents := growRooms(g, entry, roomTarget(difficulty), rand.New(rand.NewSource(subSeed(seed, "layout"))))
	if len(g.OccupiedIndices()) < 2 {
		// Growth starved (cannot happen on a healthy grid, but the
		// fallback keeps generation non-fatal regardless).
		g = grid.New(GridSize)
		entry = g.Index(GridSize/2, GridSize/2)
		parents = minimumViableFloor(g, entry)
	}

	boss := assignSpecialRooms(g, entry, difficulty, rand.New(rand.NewSource(subSeed(seed, "specials"))))
	carveDoors(g, parents, rand.New(rand.NewSource(subSeed(seed, "doors"))))

	fd := &FloorDescription{
		Seed:       seed,
		FloorIndex: floorIndex,
		Difficulty: difficulty,
		Grid:       g,
		Tiles:      rasterize(g),
		EntryRoom:  entry,
		BossRoom:   boss,
	}
	fd.Spawns = populate(g, seed, floorIndex, difficulty)
	return fd
}

// roomTarget scales the occupied-cell goal with difficulty.
func roomTarget(difficulty float64) int {
	target := 6 + int(2*difficulty)
	if target > GridSize*GridSize {
		target = GridSize * GridSize
	}
	return target
}

// edge is an unordered pair of adjacent cell indices.
type edge struct {
	a, b int
}

func makeEdge(a, b int) edge {
	if a > b {
		a, b = b, a
	}
	return edge{a, b}
}

// growRooms grows the occupied region from the entry cell, one adjacent cell
// at a time, until target cells are occupied or the attempt budget runs out.
// It returns the set of parent edges (the edge each new cell was grown
// through); opening exactly those doors already yields a connected graph.
//
// Every draw depends only on the occupied state so far, never on target, so
// a higher-difficulty floor replays the identical growth prefix of its
// lower-difficulty counterpart before growing further.
func growRooms(g *grid.Grid, entry int, target int, rng *rand.Rand) map[edge]bool {
	ex, ey := g.Coords(entry)
	g.Occupy(ex, ey, grid.KindSafe)

	parents := make(map[edge]bool)
	count := 1
	for attempt := 0; count < target && attempt < maxGrowthAttempts; attempt++ {
		occupied := g.OccupiedIndices()
		from := occupied[rng.Intn(len(occupied))]
		dir := grid.Dirs[rng.Intn(len(grid.Dirs))]

		fx, fy := g.Coords(from)
		dx, dy := dir.Offset()
		nx, ny := fx+dx, fy+dy
		if !g.InBounds(nx, ny) || g.At(nx, ny).Occupied {
			continue
		}
		g.Occupy(nx, ny, grid.KindNormal)
		parents[makeEdge(from, g.Index(nx, ny))] = true
		count++
	}
	return parents
}

// minimumViableFloor places the entry room plus one boss room directly
// beside it. Used only when randomized growth starves.
func minimumViableFloor(g *grid.Grid, entry int) map[edge]bool {
	ex, ey := g.Coords(entry)
	g.Occupy(ex, ey, grid.KindSafe)
	g.Occupy(ex+1, ey, grid.KindBoss)
	return map[edge]bool{makeEdge(entry, g.Index(ex+1, ey)): true}
}

// assignSpecialRooms promotes occupied cells to special kinds and returns
// the boss cell index.
//
// The boss room is the occupied cell with maximum adjacency-graph distance
// from the entry, lowest grid index winning ties. Treasure and Challenge
// rooms are then drawn from the remaining cells; the Challenge cap grows
// with difficulty while Treasure stays capped at one.
func assignSpecialRooms(g *grid.Grid, entry int, difficulty float64, rng *rand.Rand) int {
	boss := farthestCell(g, entry)
	bx, by := g.Coords(boss)
	g.At(bx, by).Kind = grid.KindBoss

	// Candidates exclude the entry and boss cells, ascending index order.
	var candidates []int
	for _, i := range g.OccupiedIndices() {
		if i != entry && i != boss {
			candidates = append(candidates, i)
		}
	}

	pick := func(kind grid.Kind) {
		if len(candidates) == 0 {
			return
		}
		n := rng.Intn(len(candidates))
		i := candidates[n]
		candidates = append(candidates[:n], candidates[n+1:]...)
		x, y := g.Coords(i)
		g.At(x, y).Kind = kind
	}

	pick(grid.KindTreasure)
	for c := 0; c < challengeCap(difficulty); c++ {
		pick(grid.KindChallenge)
	}
	return boss
}

// challengeCap returns how many Challenge rooms a floor of this difficulty
// may carry.
func challengeCap(difficulty float64) int {
	return 1 + int(difficulty)/2
}

// farthestCell BFS-walks the adjacency graph of occupied cells (every
// adjacent occupied pair counts as an edge, doors are carved later) and
// returns the cell farthest from entry, lowest index on ties.
func farthestCell(g *grid.Grid, entry int) int {
	dist := map[int]int{entry: 0}
	queue := []int{entry}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cx, cy := g.Coords(cur)
		for _, d := range grid.Dirs {
			dx, dy := d.Offset()
			nx, ny := cx+dx, cy+dy
			if !g.InBounds(nx, ny) || !g.At(nx, ny).Occupied {
				continue
			}
			ni := g.Index(nx, ny)
			if _, seen := dist[ni]; seen {
				continue
			}
			dist[ni] = dist[cur] + 1
			queue = append(queue, ni)
		}
	}

	best, bestDist := entry, -1
	for _, i := range g.OccupiedIndices() {
		d, ok := dist[i]
		if !ok {
			continue
		}
		if d > bestDist || (d == bestDist && i < best) {
			best, bestDist = i, d
		}
	}
	return best
}

// carveDoors opens door edges between adjacent occupied cells. Growth-parent
// edges always open; the rest open with extraDoorChance. Scanning right and
// down from each cell in ascending index order visits every pair once, so
// the random draw order is fixed.
func carveDoors(g *grid.Grid, parents map[edge]bool, rng *rand.Rand) {
	for _, i := range g.OccupiedIndices() {
		x, y := g.Coords(i)
		for _, d := range [2]grid.Dir{grid.DirRight, grid.DirDown} {
			dx, dy := d.Offset()
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) || !g.At(nx, ny).Occupied {
				continue
			}
			if parents[makeEdge(i, g.Index(nx, ny))] || rng.Float64() < extraDoorChance {
				g.OpenDoor(x, y, d)
			}
		}
	}
}

// rasterize converts the room graph into a dense tile map. Each occupied
// cell becomes a walled room with a floor interior; every open door edge
// becomes a pair of Door tiles facing each other across the shared border.
func rasterize(g *grid.Grid) *tilemap.TileMap {
	m := tilemap.New(GridSize*RoomTileW, GridSize*RoomTileH)

	for _, i := range g.OccupiedIndices() {
		cx, cy := g.Coords(i)
		r := tilemap.Rect{
			X1: cx * RoomTileW,
			Y1: cy * RoomTileH,
			X2: cx*RoomTileW + RoomTileW - 1,
			Y2: cy*RoomTileH + RoomTileH - 1,
		}
		m.Rooms[i] = r
		for y := r.Y1 + 1; y <= r.Y2-1; y++ {
			for x := r.X1 + 1; x <= r.X2-1; x++ {
				m.Set(x, y, tilemap.MakeFloor())
			}
		}
	}

	for _, i := range g.OccupiedIndices() {
		r := m.Rooms[i]
		midX := (r.X1 + r.X2) / 2
		midY := (r.Y1 + r.Y2) / 2
		if g.Cells[i].Doors[grid.DirRight] {
			m.Set(r.X2, midY, tilemap.MakeDoor())
			m.Set(r.X2+1, midY, tilemap.MakeDoor())
		}
		if g.Cells[i].Doors[grid.DirDown] {
			m.Set(midX, r.Y2, tilemap.MakeDoor())
			m.Set(midX, r.Y2+1, tilemap.MakeDoor())
		}
	}
	return m
}
