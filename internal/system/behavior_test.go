package system

import (
	"testing"

	"infinite-tower/internal/ai"
	"infinite-tower/internal/component"
	"infinite-tower/internal/ecs"
	"infinite-tower/internal/tilemap"
	"infinite-tower/internal/vec"
)

func behaviorWorld(t *testing.T, enemyPos, playerPos vec.Vec2) (*ecs.World, *tilemap.TileMap, ecs.EntityID) {
	t.Helper()
	w := ecs.NewWorld()
	m := openRoom(40, 40)

	enemy := w.CreateEntity()
	agent, err := ai.NewAgent(uint64(enemy), ai.Aggressive, enemyPos, 50)
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	w.Add(enemy, component.Position{Pos: enemyPos})
	w.Add(enemy, component.Velocity{})
	w.Add(enemy, component.Health{Current: 50, Max: 50})
	w.Add(enemy, component.Combat{Damage: 5})
	w.Add(enemy, component.Brain{Agent: agent})

	player := w.CreateEntity()
	w.Add(player, component.Position{Pos: playerPos})
	w.Add(player, component.Health{Current: 100, Max: 100})
	w.Add(player, component.TagPlayer{})

	return w, m, enemy
}

func TestRunBehaviorWritesVelocityTowardPlayer(t *testing.T) {
	// Aggressive detection is 8 tiles; player 5 tiles to the right.
	w, m, enemy := behaviorWorld(t, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 15, Y: 10})
	engine := ai.NewEngine(1)

	RunBehavior(w, m, engine, 0.125)

	vel := w.Get(enemy, component.CVelocity).(component.Velocity)
	if vel.Vel.X <= 0 {
		t.Fatalf("enemy should chase rightward, velocity %v", vel.Vel)
	}
	agent := w.Get(enemy, component.CBrain).(component.Brain).Agent
	if agent.State != ai.StateChase {
		t.Fatalf("agent state = %v, want Chase", agent.State)
	}
}

func TestRunBehaviorMirrorsWorldStateIntoAgent(t *testing.T) {
	w, m, enemy := behaviorWorld(t, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 30, Y: 30})
	engine := ai.NewEngine(1)

	// Another system moved and hurt the enemy since the last tick.
	w.Add(enemy, component.Position{Pos: vec.Vec2{X: 12, Y: 10}})
	w.Add(enemy, component.Health{Current: 20, Max: 50})

	RunBehavior(w, m, engine, 0.125)

	agent := w.Get(enemy, component.CBrain).(component.Brain).Agent
	if agent.Pos != (vec.Vec2{X: 12, Y: 10}) {
		t.Fatalf("agent position %v not mirrored", agent.Pos)
	}
	if agent.Health != 20 {
		t.Fatalf("agent health %v not mirrored", agent.Health)
	}
}

func TestRunBehaviorReturnsAttackIntents(t *testing.T) {
	// Player inside melee reach.
	w, m, enemy := behaviorWorld(t, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 11, Y: 10})
	engine := ai.NewEngine(1)

	// First tick transitions Idle -> Chase -> ... one state per tick.
	var attacks []ai.Intent
	for i := 0; i < 3 && len(attacks) == 0; i++ {
		attacks = RunBehavior(w, m, engine, 0.125)
	}
	if len(attacks) != 1 {
		t.Fatalf("expected one attack intent, got %d", len(attacks))
	}
	if attacks[0].AgentID != uint64(enemy) {
		t.Fatalf("attack from agent %d, want %d", attacks[0].AgentID, enemy)
	}
	vel := w.Get(enemy, component.CVelocity).(component.Velocity)
	if vel.Vel != (vec.Vec2{}) {
		t.Fatalf("attacking enemy should hold position, velocity %v", vel.Vel)
	}
}

func TestRunBehaviorWithoutPlayerIdles(t *testing.T) {
	w := ecs.NewWorld()
	m := openRoom(40, 40)
	enemy := w.CreateEntity()
	agent, err := ai.NewAgent(uint64(enemy), ai.Aggressive, vec.Vec2{X: 10, Y: 10}, 50)
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	w.Add(enemy, component.Position{Pos: vec.Vec2{X: 10, Y: 10}})
	w.Add(enemy, component.Velocity{})
	w.Add(enemy, component.Health{Current: 50, Max: 50})
	w.Add(enemy, component.Brain{Agent: agent})

	attacks := RunBehavior(w, m, engineOrFatal(t), 0.125)
	if len(attacks) != 0 {
		t.Fatalf("no target, no attacks; got %d", len(attacks))
	}
	if agent.State != ai.StateIdle {
		t.Fatalf("agent state = %v, want Idle", agent.State)
	}
}

func engineOrFatal(t *testing.T) *ai.Engine {
	t.Helper()
	return ai.NewEngine(7)
}
