package component

import "infinite-tower/internal/ecs"

const CArchetype ecs.ComponentType = 7

// Archetype records which asset table entry an entity was spawned from.
type Archetype struct {
	Ref    string
	RoomID int
	Weight float64
}

func (Archetype) Type() ecs.ComponentType { return CArchetype }
