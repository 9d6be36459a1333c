package component

import (
	"infinite-tower/internal/ecs"
	"infinite-tower/internal/vec"
)

const CPosition ecs.ComponentType = 1

// Position is a continuous world-space position measured in tiles.
type Position struct {
	Pos vec.Vec2
}

func (Position) Type() ecs.ComponentType { return CPosition }
