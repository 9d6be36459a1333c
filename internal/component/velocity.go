package component

import (
	"infinite-tower/internal/ecs"
	"infinite-tower/internal/vec"
)

const CVelocity ecs.ComponentType = 2

// Velocity is a movement intent in tiles per second. The behavior engine
// writes it each tick; the movement system consumes and zeroes it.
type Velocity struct {
	Vel vec.Vec2
}

func (Velocity) Type() ecs.ComponentType { return CVelocity }
