package factory

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"infinite-tower/assets"
	"infinite-tower/internal/ai"
	"infinite-tower/internal/component"
	"infinite-tower/internal/ecs"
	"infinite-tower/internal/floorgen"
	"infinite-tower/internal/vec"
)

// NewPlayer creates the player entity at a world-space position.
func NewPlayer(w *ecs.World, pos vec.Vec2, maxHealth float64) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{Pos: pos})
	w.Add(id, component.Velocity{})
	w.Add(id, component.Health{Current: maxHealth, Max: maxHealth})
	w.Add(id, component.Combat{Damage: 10})
	w.Add(id, component.Renderable{
		Glyph:       "🧙",
		FGColor:     tcell.ColorYellow,
		RenderOrder: 10,
	})
	w.Add(id, component.TagPlayer{})
	return id
}

// SpawnFloor resolves every spawn descriptor on a floor into exactly one
// entity. Descriptors are processed in generator order, so entity IDs are
// reproducible for a given floor description.
func SpawnFloor(w *ecs.World, floor *floorgen.FloorDescription) error {
	for _, d := range floor.Spawns {
		pos, err := worldPos(floor, d)
		if err != nil {
			return err
		}
		switch d.Kind {
		case floorgen.SpawnEnemy:
			if _, err := NewEnemy(w, d, pos); err != nil {
				return err
			}
		case floorgen.SpawnLoot:
			if _, err := NewLoot(w, d, pos); err != nil {
				return err
			}
		default:
			return fmt.Errorf("spawn in room %d: unknown kind %d", d.RoomID, d.Kind)
		}
	}
	return nil
}

// NewEnemy creates an enemy entity from a spawn descriptor at a world-space
// position. Defensive and tank archetypes patrol a small loop around their
// spawn point; the rest hold position until something enters detection range.
func NewEnemy(w *ecs.World, d floorgen.SpawnDescriptor, pos vec.Vec2) (ecs.EntityID, error) {
	arch, ok := assets.ArchetypeFor(d.ArchetypeRef)
	if !ok {
		return ecs.NilEntity, fmt.Errorf("spawn in room %d: unknown archetype %q", d.RoomID, d.ArchetypeRef)
	}

	id := w.CreateEntity()
	agent, err := ai.NewAgent(uint64(id), arch.Personality, pos, arch.MaxHealth)
	if err != nil {
		w.DestroyEntity(id)
		return ecs.NilEntity, fmt.Errorf("spawn %s in room %d: %w", arch.Ref, d.RoomID, err)
	}
	if arch.Personality == ai.Defensive || arch.Personality == ai.Tank {
		agent.SetPatrol(patrolLoop(pos))
	}

	w.Add(id, component.Position{Pos: pos})
	w.Add(id, component.Velocity{})
	w.Add(id, component.Health{Current: arch.MaxHealth, Max: arch.MaxHealth})
	w.Add(id, component.Combat{Damage: arch.Damage})
	w.Add(id, component.Brain{Agent: agent})
	w.Add(id, component.Archetype{Ref: arch.Ref, RoomID: d.RoomID, Weight: d.DifficultyWeight})
	w.Add(id, component.Renderable{
		Glyph:       arch.Glyph,
		FGColor:     tcell.ColorRed,
		RenderOrder: 5,
	})
	if arch.IsBoss {
		w.Add(id, component.TagBoss{})
	}
	return id, nil
}

// NewLoot creates a loot pickup from a spawn descriptor.
func NewLoot(w *ecs.World, d floorgen.SpawnDescriptor, pos vec.Vec2) (ecs.EntityID, error) {
	def, ok := assets.LootFor(d.ArchetypeRef)
	if !ok {
		return ecs.NilEntity, fmt.Errorf("spawn in room %d: unknown loot ref %q", d.RoomID, d.ArchetypeRef)
	}
	id := w.CreateEntity()
	w.Add(id, component.Position{Pos: pos})
	w.Add(id, component.Loot{Ref: def.Ref})
	w.Add(id, component.Archetype{Ref: def.Ref, RoomID: d.RoomID, Weight: d.DifficultyWeight})
	w.Add(id, component.Renderable{
		Glyph:       def.Glyph,
		FGColor:     tcell.ColorGreen,
		RenderOrder: 2,
	})
	return id, nil
}

// worldPos converts a descriptor's room-local tile position to the center of
// the matching world tile.
func worldPos(floor *floorgen.FloorDescription, d floorgen.SpawnDescriptor) (vec.Vec2, error) {
	r, ok := floor.Tiles.RoomRect(d.RoomID)
	if !ok {
		return vec.Vec2{}, fmt.Errorf("spawn references unknown room %d", d.RoomID)
	}
	return vec.Vec2{
		X: float64(r.X1) + d.LocalPos.X + 0.5,
		Y: float64(r.Y1) + d.LocalPos.Y + 0.5,
	}, nil
}

// patrolLoop builds a clockwise rectangle of waypoints around a spawn point.
// The loop stays well inside the room interior because spawn tiles keep a
// two-tile margin from the walls.
func patrolLoop(center vec.Vec2) []vec.Vec2 {
	const reach = 1.25
	return []vec.Vec2{
		{X: center.X - reach, Y: center.Y - reach},
		{X: center.X + reach, Y: center.Y - reach},
		{X: center.X + reach, Y: center.Y + reach},
		{X: center.X - reach, Y: center.Y + reach},
	}
}
