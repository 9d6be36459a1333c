package component

import "infinite-tower/internal/ecs"

const (
	CTagPlayer ecs.ComponentType = 8
	CTagBoss   ecs.ComponentType = 9
)

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagBoss marks the floor's single boss enemy.
type TagBoss struct{}

func (TagBoss) Type() ecs.ComponentType { return CTagBoss }
