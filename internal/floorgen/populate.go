package floorgen

import (
	"math/rand"

	"infinite-tower/internal/grid"
	"infinite-tower/internal/vec"
)

// archetypeChoice is one entry of the trash-enemy pool, ordered by tier.
// Higher floor indices and difficulties unlock a longer prefix of the pool.
type archetypeChoice struct {
	Ref  string
	Tier int
}

// enemyPool lists hostile archetypes the generator can request, ascending
// tier. The refs are resolved to concrete stats by the assets tables.
var enemyPool = []archetypeChoice{
	{Ref: "skitterling", Tier: 0},
	{Ref: "husk", Tier: 0},
	{Ref: "stalker", Tier: 1},
	{Ref: "sentinel", Tier: 1},
	{Ref: "warden", Tier: 2},
	{Ref: "brute", Tier: 2},
	{Ref: "ravager", Tier: 3},
}

// bossPool lists boss-tier archetypes by floor band (one per three floors).
var bossPool = []string{
	"husk-alpha",
	"gate-warden",
	"tower-tyrant",
}

// lootPool maps loot-table refs the loot system resolves later.
var lootPool = []string{
	"loot/common",
	"loot/uncommon",
	"loot/rare",
}

const treasureLootRef = "loot/rare"

// enemyCount returns the hostile spawn count for a room kind. The count is a
// pure function of kind and difficulty — per-room randomness goes into
// positions and archetype picks only — so the floor-wide spawn total can
// only grow as difficulty rises.
func enemyCount(kind grid.Kind, difficulty float64) int {
	switch kind {
	case grid.KindNormal:
		return 2 + int(difficulty)
	case grid.KindChallenge:
		return 4 + 2*int(difficulty)
	case grid.KindBoss:
		return 1
	default: // Safe, Treasure, Empty
		return 0
	}
}

// lootCount returns the loot spawn count for a room kind. Safe rooms get
// nothing; Treasure rooms always get the most.
func lootCount(kind grid.Kind) int {
	switch kind {
	case grid.KindNormal:
		return 1
	case grid.KindChallenge, grid.KindBoss:
		return 2
	case grid.KindTreasure:
		return 3
	default:
		return 0
	}
}

// populate emits spawn descriptors for every occupied room in ascending
// room-index order. Each room draws from two private streams (enemies,
// loot) derived from the floor seed and room index, so rooms never disturb
// each other's draws and a room's loot layout is identical at every
// difficulty.
func populate(g *grid.Grid, seed uint64, floorIndex int, difficulty float64) []SpawnDescriptor {
	weight := 1 + difficulty
	tier := int(difficulty) + floorIndex/2

	var out []SpawnDescriptor
	for _, roomID := range g.OccupiedIndices() {
		kind := g.Cells[roomID].Kind

		enemyRNG := rand.New(rand.NewSource(roomSeed(seed, roomID, "enemies")))
		taken := make(map[[2]int]bool)
		if kind == grid.KindBoss {
			// Boss rooms hold exactly one boss-tier archetype, centered,
			// and no trash spawns.
			out = append(out, SpawnDescriptor{
				Kind:             SpawnEnemy,
				ArchetypeRef:     bossRef(floorIndex),
				RoomID:           roomID,
				LocalPos:         vec.Vec2{X: float64(RoomTileW / 2), Y: float64(RoomTileH / 2)},
				DifficultyWeight: weight,
			})
		} else {
			for n := 0; n < enemyCount(kind, difficulty); n++ {
				out = append(out, SpawnDescriptor{
					Kind:             SpawnEnemy,
					ArchetypeRef:     pickEnemy(enemyRNG, tier),
					RoomID:           roomID,
					LocalPos:         pickSpawnTile(enemyRNG, taken),
					DifficultyWeight: weight,
				})
			}
		}

		lootRNG := rand.New(rand.NewSource(roomSeed(seed, roomID, "loot")))
		lootTaken := make(map[[2]int]bool)
		for n := 0; n < lootCount(kind); n++ {
			ref := lootPool[lootRNG.Intn(len(lootPool))]
			if kind == grid.KindTreasure && n == 0 {
				ref = treasureLootRef
			}
			out = append(out, SpawnDescriptor{
				Kind:             SpawnLoot,
				ArchetypeRef:     ref,
				RoomID:           roomID,
				LocalPos:         pickSpawnTile(lootRNG, lootTaken),
				DifficultyWeight: weight,
			})
		}
	}
	return out
}

// bossRef returns the boss archetype for a floor index.
func bossRef(floorIndex int) string {
	band := floorIndex / 3
	if band >= len(bossPool) {
		band = len(bossPool) - 1
	}
	return bossPool[band]
}

// pickEnemy draws one archetype from the pool prefix unlocked at the given
// tier. A single Int63 draw is rescaled instead of Intn over the prefix so
// that raising the tier maps the same draw to an equal-or-later pool entry.
func pickEnemy(rng *rand.Rand, tier int) string {
	var eligible int
	for _, c := range enemyPool {
		if c.Tier <= tier {
			eligible++
		}
	}
	if eligible == 0 {
		eligible = 1
	}
	roll := float64(rng.Int63()) / float64(1<<63)
	idx := int(roll * float64(eligible))
	if idx >= eligible {
		idx = eligible - 1
	}
	return enemyPool[idx].Ref
}

// pickSpawnTile draws an interior tile for one spawn, keeping a two-tile
// margin from the walls and retrying a bounded number of times to avoid
// stacking two spawns on the same tile.
func pickSpawnTile(rng *rand.Rand, taken map[[2]int]bool) vec.Vec2 {
	const maxAttempts = 20
	var x, y int
	for attempt := 0; attempt < maxAttempts; attempt++ {
		x = 2 + rng.Intn(RoomTileW-4)
		y = 2 + rng.Intn(RoomTileH-4)
		if !taken[[2]int{x, y}] {
			break
		}
	}
	taken[[2]int{x, y}] = true
	return vec.Vec2{X: float64(x), Y: float64(y)}
}
