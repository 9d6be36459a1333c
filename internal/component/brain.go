package component

import (
	"infinite-tower/internal/ai"
	"infinite-tower/internal/ecs"
)

const CBrain ecs.ComponentType = 4

// Brain attaches a behavior agent to an entity. The agent holds all
// decision state; entity position and health are mirrored into it
// before each behavior tick.
type Brain struct {
	Agent *ai.Agent
}

func (Brain) Type() ecs.ComponentType { return CBrain }
