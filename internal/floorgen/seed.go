package floorgen

import (
	"fmt"
	"hash/fnv"
	"strings"
)

// defaultName is substituted when the player-supplied name is empty or all
// whitespace, so a degenerate name still derives a real seed.
const defaultName = "wanderer"

// DeriveSeed hashes a player-supplied name and floor index into the 64-bit
// seed that drives one floor's generation. Identical inputs always yield the
// identical seed; the name is never an error.
func DeriveSeed(name string, floorIndex int) uint64 {
	name = strings.TrimSpace(name)
	if name == "" {
		name = defaultName
	}
	if floorIndex < 0 {
		floorIndex = 0
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d", name, floorIndex)
	return h.Sum64()
}

// subSeed derives an independent decision-stream seed from the floor seed.
// Each generation concern (layout, specials, doors, per-room population)
// draws from its own stream so adding rooms at higher difficulty never
// perturbs draws made for rooms that already existed at lower difficulty.
func subSeed(seed uint64, label string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s", seed, label)
	return int64(h.Sum64())
}

// roomSeed derives the per-room population stream seed.
func roomSeed(seed uint64, roomID int, label string) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|room%d|%s", seed, roomID, label)
	return int64(h.Sum64())
}
