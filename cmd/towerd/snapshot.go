package main

import (
	"encoding/json"

	"infinite-tower/internal/component"
	"infinite-tower/internal/game"
	"infinite-tower/internal/grid"
)

// floorMessage is sent once when an observer connects and again after a
// floor transition.
type floorMessage struct {
	Type       string      `json:"type"` // "floor"
	RunID      string      `json:"run_id"`
	FloorIndex int         `json:"floor_index"`
	Seed       uint64      `json:"seed"`
	Difficulty float64     `json:"difficulty"`
	EntryRoom  int         `json:"entry_room"`
	BossRoom   int         `json:"boss_room"`
	Rooms      []roomState `json:"rooms"`
}

type roomState struct {
	ID    int     `json:"id"`
	Kind  string  `json:"kind"`
	Doors [4]bool `json:"doors"` // up, down, left, right
}

// tickMessage is the periodic world snapshot.
type tickMessage struct {
	Type       string        `json:"type"` // "tick"
	RunID      string        `json:"run_id"`
	FloorIndex int           `json:"floor_index"`
	Tick       uint64        `json:"tick"`
	Entities   []entityState `json:"entities"`
}

type entityState struct {
	ID     uint64  `json:"id"`
	Ref    string  `json:"ref,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Health float64 `json:"health,omitempty"`
	State  string  `json:"state,omitempty"`
	Player bool    `json:"player,omitempty"`
}

func marshalFloor(s *game.Session) ([]byte, error) {
	floor := s.Floor()
	msg := floorMessage{
		Type:       "floor",
		RunID:      s.RunID(),
		FloorIndex: floor.FloorIndex,
		Seed:       floor.Seed,
		Difficulty: floor.Difficulty,
		EntryRoom:  floor.EntryRoom,
		BossRoom:   floor.BossRoom,
	}
	for _, i := range floor.Grid.OccupiedIndices() {
		cell := floor.Grid.Cells[i]
		msg.Rooms = append(msg.Rooms, roomState{
			ID:   i,
			Kind: cell.Kind.String(),
			Doors: [4]bool{
				cell.Doors[grid.DirUp],
				cell.Doors[grid.DirDown],
				cell.Doors[grid.DirLeft],
				cell.Doors[grid.DirRight],
			},
		})
	}
	return json.Marshal(msg)
}

func marshalSnapshot(s *game.Session, tick uint64) ([]byte, error) {
	w := s.World()
	msg := tickMessage{
		Type:       "tick",
		RunID:      s.RunID(),
		FloorIndex: s.FloorIndex(),
		Tick:       tick,
	}
	for _, id := range w.Query(component.CPosition) {
		pos := w.Get(id, component.CPosition).(component.Position)
		e := entityState{ID: uint64(id), X: pos.Pos.X, Y: pos.Pos.Y}
		if c := w.Get(id, component.CHealth); c != nil {
			e.Health = c.(component.Health).Current
		}
		if c := w.Get(id, component.CArchetype); c != nil {
			e.Ref = c.(component.Archetype).Ref
		}
		if c := w.Get(id, component.CBrain); c != nil {
			e.State = c.(component.Brain).Agent.State.String()
		}
		e.Player = w.Get(id, component.CTagPlayer) != nil
		msg.Entities = append(msg.Entities, e)
	}
	return json.Marshal(msg)
}
