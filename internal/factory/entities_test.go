package factory

import (
	"testing"

	"infinite-tower/internal/ai"
	"infinite-tower/internal/component"
	"infinite-tower/internal/ecs"
	"infinite-tower/internal/floorgen"
	"infinite-tower/internal/vec"
)

func testFloor(t *testing.T) *floorgen.FloorDescription {
	t.Helper()
	return floorgen.Generate(floorgen.DeriveSeed("Alice", 0), 0, 1.0)
}

func TestNewPlayerComponents(t *testing.T) {
	w := ecs.NewWorld()
	id := NewPlayer(w, vec.Vec2{X: 5.5, Y: 3.5}, 100)

	if !w.Alive(id) {
		t.Fatal("player entity must be alive")
	}
	pos := w.Get(id, component.CPosition)
	if pos == nil {
		t.Fatal("player must have a position")
	}
	if p := pos.(component.Position); p.Pos.X != 5.5 || p.Pos.Y != 3.5 {
		t.Errorf("position = %v; want (5.5, 3.5)", p.Pos)
	}
	if w.Get(id, component.CTagPlayer) == nil {
		t.Error("player must carry the player tag")
	}
	if w.Get(id, component.CBrain) != nil {
		t.Error("player must not have a behavior agent")
	}
}

func TestSpawnFloorOneEntityPerDescriptor(t *testing.T) {
	floor := testFloor(t)
	w := ecs.NewWorld()
	if err := SpawnFloor(w, floor); err != nil {
		t.Fatalf("SpawnFloor: %v", err)
	}

	enemies := w.Query(component.CBrain)
	loot := w.Query(component.CLoot)
	var wantEnemies, wantLoot int
	for _, d := range floor.Spawns {
		switch d.Kind {
		case floorgen.SpawnEnemy:
			wantEnemies++
		case floorgen.SpawnLoot:
			wantLoot++
		}
	}
	if len(enemies) != wantEnemies {
		t.Errorf("spawned %d enemies; descriptors list %d", len(enemies), wantEnemies)
	}
	if len(loot) != wantLoot {
		t.Errorf("spawned %d loot drops; descriptors list %d", len(loot), wantLoot)
	}
}

func TestSpawnFloorExactlyOneBoss(t *testing.T) {
	floor := testFloor(t)
	w := ecs.NewWorld()
	if err := SpawnFloor(w, floor); err != nil {
		t.Fatalf("SpawnFloor: %v", err)
	}
	if bosses := w.Query(component.CTagBoss); len(bosses) != 1 {
		t.Fatalf("expected exactly one boss entity, got %d", len(bosses))
	}
}

func TestSpawnPositionsInsideOwningRoom(t *testing.T) {
	floor := testFloor(t)
	w := ecs.NewWorld()
	if err := SpawnFloor(w, floor); err != nil {
		t.Fatalf("SpawnFloor: %v", err)
	}
	for _, id := range w.Query(component.CArchetype) {
		arch := w.Get(id, component.CArchetype).(component.Archetype)
		pos := w.Get(id, component.CPosition).(component.Position)
		r, ok := floor.Tiles.RoomRect(arch.RoomID)
		if !ok {
			t.Fatalf("entity %d references unknown room %d", id, arch.RoomID)
		}
		if pos.Pos.X <= float64(r.X1) || pos.Pos.X >= float64(r.X2)+1 ||
			pos.Pos.Y <= float64(r.Y1) || pos.Pos.Y >= float64(r.Y2)+1 {
			t.Errorf("entity %d at %v outside room %d rect %+v", id, pos.Pos, arch.RoomID, r)
		}
	}
}

func TestEnemyAgentsStartIdleWithMirroredState(t *testing.T) {
	floor := testFloor(t)
	w := ecs.NewWorld()
	if err := SpawnFloor(w, floor); err != nil {
		t.Fatalf("SpawnFloor: %v", err)
	}
	for _, id := range w.Query(component.CBrain) {
		agent := w.Get(id, component.CBrain).(component.Brain).Agent
		if agent.State != ai.StateIdle {
			t.Errorf("entity %d starts in %v, want Idle", id, agent.State)
		}
		if agent.ID != uint64(id) {
			t.Errorf("entity %d agent carries ID %d", id, agent.ID)
		}
		pos := w.Get(id, component.CPosition).(component.Position)
		if agent.Pos != pos.Pos {
			t.Errorf("entity %d agent position %v does not match component %v", id, agent.Pos, pos.Pos)
		}
		hp := w.Get(id, component.CHealth).(component.Health)
		if agent.Health != hp.Current || agent.MaxHealth != hp.Max {
			t.Errorf("entity %d agent health %v/%v does not match component %v/%v",
				id, agent.Health, agent.MaxHealth, hp.Current, hp.Max)
		}
	}
}

func TestDefensiveAndTankEnemiesPatrol(t *testing.T) {
	floor := testFloor(t)
	w := ecs.NewWorld()
	if err := SpawnFloor(w, floor); err != nil {
		t.Fatalf("SpawnFloor: %v", err)
	}
	for _, id := range w.Query(component.CBrain) {
		agent := w.Get(id, component.CBrain).(component.Brain).Agent
		wantsPatrol := agent.Personality == ai.Defensive || agent.Personality == ai.Tank
		if wantsPatrol && len(agent.PatrolPoints) == 0 {
			t.Errorf("entity %d (%v) should have a patrol route", id, agent.Personality)
		}
		if !wantsPatrol && len(agent.PatrolPoints) != 0 {
			t.Errorf("entity %d (%v) should not patrol", id, agent.Personality)
		}
	}
}

func TestNewEnemyRejectsUnknownArchetype(t *testing.T) {
	w := ecs.NewWorld()
	d := floorgen.SpawnDescriptor{Kind: floorgen.SpawnEnemy, ArchetypeRef: "no-such-thing", RoomID: 12}
	if _, err := NewEnemy(w, d, vec.Vec2{X: 1, Y: 1}); err == nil {
		t.Fatal("expected error for unknown archetype ref")
	}
	if ids := w.Query(component.CBrain); len(ids) != 0 {
		t.Errorf("failed spawn must not leave entities behind, got %d", len(ids))
	}
}
