package component

import "infinite-tower/internal/ecs"

const CCombat ecs.ComponentType = 5

type Combat struct {
	Damage float64
}

func (Combat) Type() ecs.ComponentType { return CCombat }
