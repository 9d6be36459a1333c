package system

import (
	"infinite-tower/internal/ai"
	"infinite-tower/internal/component"
	"infinite-tower/internal/ecs"
	"infinite-tower/internal/tilemap"
	"infinite-tower/internal/vec"
)

// RunBehavior mirrors world state into every behavior agent, advances the
// engine one tick, and writes the resulting movement intents back as
// Velocity components. Attack intents are returned for the combat system.
//
// Agents are visited in ascending entity ID order, so a given world state
// always produces the same intent sequence.
func RunBehavior(w *ecs.World, m *tilemap.TileMap, engine *ai.Engine, dt float64) []ai.Intent {
	snap := ai.Snapshot{
		Walkable: func(p vec.Vec2) bool {
			return m.IsWalkable(int(p.X), int(p.Y))
		},
	}
	if players := w.Query(component.CTagPlayer, component.CPosition); len(players) > 0 {
		pos := w.Get(players[0], component.CPosition).(component.Position)
		snap.TargetPos = pos.Pos
		snap.TargetValid = true
	}

	ids := w.Query(component.CBrain, component.CPosition, component.CHealth)
	agents := make([]*ai.Agent, 0, len(ids))
	for _, id := range ids {
		agent := w.Get(id, component.CBrain).(component.Brain).Agent
		agent.Pos = w.Get(id, component.CPosition).(component.Position).Pos
		hp := w.Get(id, component.CHealth).(component.Health)
		agent.Health = hp.Current
		agent.MaxHealth = hp.Max
		agents = append(agents, agent)
	}

	intents := engine.Advance(agents, snap, dt)

	var attacks []ai.Intent
	for _, it := range intents {
		w.Add(ecs.EntityID(it.AgentID), component.Velocity{Vel: it.Velocity})
		if it.Attack != nil {
			attacks = append(attacks, it)
		}
	}
	return attacks
}
