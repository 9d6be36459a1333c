package system

import (
	"infinite-tower/internal/component"
	"infinite-tower/internal/ecs"
	"infinite-tower/internal/tilemap"
	"infinite-tower/internal/vec"
)

// entityRadius keeps entity centers off wall tiles when sliding along them.
const entityRadius = 0.3

// RunMovement integrates every Velocity intent into a new position, then
// zeroes the intent. Each axis is resolved independently, so an entity
// pushed diagonally into a wall slides along it instead of stopping.
func RunMovement(w *ecs.World, m *tilemap.TileMap, dt float64) {
	for _, id := range w.Query(component.CVelocity, component.CPosition) {
		vel := w.Get(id, component.CVelocity).(component.Velocity)
		if vel.Vel.X == 0 && vel.Vel.Y == 0 {
			continue
		}
		pos := w.Get(id, component.CPosition).(component.Position)

		next := pos.Pos
		if nx := next.X + vel.Vel.X*dt; clearAt(m, vec.Vec2{X: nx, Y: next.Y}) {
			next.X = nx
		}
		if ny := next.Y + vel.Vel.Y*dt; clearAt(m, vec.Vec2{X: next.X, Y: ny}) {
			next.Y = ny
		}

		w.Add(id, component.Position{Pos: next})
		w.Add(id, component.Velocity{})
	}
}

// clearAt reports whether a circle of entityRadius centered at p rests
// entirely on walkable tiles.
func clearAt(m *tilemap.TileMap, p vec.Vec2) bool {
	for _, dx := range [2]float64{-entityRadius, entityRadius} {
		for _, dy := range [2]float64{-entityRadius, entityRadius} {
			if !m.IsWalkable(int(p.X+dx), int(p.Y+dy)) {
				return false
			}
		}
	}
	return true
}
