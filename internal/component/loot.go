package component

import "infinite-tower/internal/ecs"

const CLoot ecs.ComponentType = 6

// Loot marks a pickup on the floor.
type Loot struct {
	Ref string // asset table reference, e.g. "loot/rare"
}

func (Loot) Type() ecs.ComponentType { return CLoot }
