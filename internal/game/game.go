package game

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"infinite-tower/internal/ai"
	"infinite-tower/internal/component"
	"infinite-tower/internal/config"
	"infinite-tower/internal/ecs"
	"infinite-tower/internal/factory"
	"infinite-tower/internal/floorgen"
	"infinite-tower/internal/system"
	"infinite-tower/internal/vec"
)

// State tracks the session's top-level state machine.
type State uint8

const (
	StateRunning State = iota
	StateDead
)

const (
	pickupRadius = 0.75
	playerReach  = 1.5
)

// Session owns one run: the current floor's world, the behavior engine,
// and the run log. All mutation happens through Tick and the player
// methods; the session is not safe for concurrent use.
type Session struct {
	cfg   config.SimConfig
	log   *slog.Logger
	state State

	world    *ecs.World
	floor    *floorgen.FloorDescription
	floorIdx int
	engine   *ai.Engine
	playerID ecs.EntityID

	tick   uint64
	runLog RunLog
}

// NewSession starts a run on floor zero.
func NewSession(cfg config.SimConfig, log *slog.Logger) (*Session, error) {
	s := &Session{
		cfg: cfg,
		log: log,
		runLog: RunLog{
			ID:            uuid.NewString(),
			SeedName:      cfg.SeedName,
			EnemiesKilled: make(map[string]int),
			LootCollected: make(map[string]int),
		},
	}
	if err := s.loadFloor(0, cfg.PlayerHealth); err != nil {
		return nil, err
	}
	return s, nil
}

// loadFloor builds a fresh world for the given floor and drops the player
// at the entry room's center with the given health. The old world, if any,
// is replaced only after the new one spawned cleanly.
func (s *Session) loadFloor(floorIdx int, playerHealth float64) error {
	seed := floorgen.DeriveSeed(s.cfg.SeedName, floorIdx)
	difficulty := s.cfg.DifficultyFor(floorIdx)
	floor := floorgen.Generate(seed, floorIdx, difficulty)

	world := ecs.NewWorld()
	if err := factory.SpawnFloor(world, floor); err != nil {
		return fmt.Errorf("floor %d: %w", floorIdx, err)
	}

	entry, ok := floor.Tiles.RoomRect(floor.EntryRoom)
	if !ok {
		return fmt.Errorf("floor %d: entry room %d has no rect", floorIdx, floor.EntryRoom)
	}
	cx, cy := entry.Center()
	playerID := factory.NewPlayer(world, vec.Vec2{X: float64(cx) + 0.5, Y: float64(cy) + 0.5}, s.cfg.PlayerHealth)
	if playerHealth < s.cfg.PlayerHealth {
		world.Add(playerID, component.Health{Current: playerHealth, Max: s.cfg.PlayerHealth})
	}

	s.world = world
	s.floor = floor
	s.floorIdx = floorIdx
	s.engine = ai.NewEngine(int64(seed) ^ int64(floorIdx))
	s.playerID = playerID
	if floorIdx+1 > s.runLog.FloorsReached {
		s.runLog.FloorsReached = floorIdx + 1
	}

	s.log.Info("floor loaded",
		"run", s.runLog.ID,
		"floor", floorIdx,
		"seed", seed,
		"difficulty", difficulty,
		"rooms", len(floor.Tiles.Rooms),
		"spawns", len(floor.Spawns),
	)
	return nil
}

// NextFloor descends one floor, carrying the player's health over. On
// failure the current floor stays live.
func (s *Session) NextFloor() error {
	hp := s.cfg.PlayerHealth
	if c := s.world.Get(s.playerID, component.CHealth); c != nil {
		hp = c.(component.Health).Current
	}
	return s.loadFloor(s.floorIdx+1, hp)
}

// Tick advances the simulation by dt seconds: behavior, then movement,
// then combat, then pickups. Returns the attack events resolved this tick.
func (s *Session) Tick(dt float64) []system.AttackEvent {
	if s.state != StateRunning {
		return nil
	}
	s.tick++
	s.runLog.TicksPlayed = s.tick

	attacks := system.RunBehavior(s.world, s.floor.Tiles, s.engine, dt)
	system.RunMovement(s.world, s.floor.Tiles, dt)
	events := system.RunCombat(s.world, attacks)

	for _, ev := range events {
		s.runLog.DamageTaken += ev.Damage
		if ev.Killed && ev.Defender == s.playerID {
			s.onPlayerDeath(ev.Attacker)
		}
	}
	if s.state == StateRunning {
		s.collectLoot()
	}
	return events
}

// SetPlayerVelocity records the player's movement intent for the next
// movement pass, in tiles per second.
func (s *Session) SetPlayerVelocity(v vec.Vec2) {
	if s.state != StateRunning {
		return
	}
	s.world.Add(s.playerID, component.Velocity{Vel: v})
}

// PlayerAttack strikes the nearest enemy within reach. Reports whether
// anything was hit.
func (s *Session) PlayerAttack() bool {
	if s.state != StateRunning {
		return false
	}
	ppos := s.world.Get(s.playerID, component.CPosition).(component.Position).Pos
	dmg := s.world.Get(s.playerID, component.CCombat).(component.Combat).Damage

	target := ecs.NilEntity
	best := math.Inf(1)
	for _, id := range s.world.Query(component.CBrain, component.CPosition) {
		epos := s.world.Get(id, component.CPosition).(component.Position).Pos
		if d2 := vec.Dist2(ppos, epos); d2 < best && d2 <= playerReach*playerReach {
			best = d2
			target = id
		}
	}
	if target == ecs.NilEntity {
		return false
	}

	ref := ""
	if c := s.world.Get(target, component.CArchetype); c != nil {
		ref = c.(component.Archetype).Ref
	}
	s.runLog.DamageDealt += dmg
	if system.Damage(s.world, target, dmg) {
		s.runLog.EnemiesKilled[ref]++
		s.log.Info("enemy killed", "run", s.runLog.ID, "archetype", ref, "floor", s.floorIdx)
	}
	return true
}

// collectLoot picks up any loot drop the player is standing on.
func (s *Session) collectLoot() {
	ppos := s.world.Get(s.playerID, component.CPosition).(component.Position).Pos
	for _, id := range s.world.Query(component.CLoot, component.CPosition) {
		lpos := s.world.Get(id, component.CPosition).(component.Position).Pos
		if vec.Dist2(ppos, lpos) > pickupRadius*pickupRadius {
			continue
		}
		ref := s.world.Get(id, component.CLoot).(component.Loot).Ref
		s.runLog.LootCollected[ref]++
		s.world.DestroyEntity(id)
		s.log.Info("loot collected", "run", s.runLog.ID, "ref", ref, "floor", s.floorIdx)
	}
}

func (s *Session) onPlayerDeath(killer ecs.EntityID) {
	s.state = StateDead
	if c := s.world.Get(killer, component.CArchetype); c != nil {
		s.runLog.CauseOfDeath = c.(component.Archetype).Ref
	}
	s.log.Info("run over",
		"run", s.runLog.ID,
		"floors", s.runLog.FloorsReached,
		"ticks", s.runLog.TicksPlayed,
		"cause", s.runLog.CauseOfDeath,
	)
	saveRunLog(s.runLog)
}

// State returns the session's state machine position.
func (s *Session) State() State { return s.state }

// World exposes the live entity registry for rendering and observation.
func (s *Session) World() *ecs.World { return s.world }

// Floor returns the current floor description.
func (s *Session) Floor() *floorgen.FloorDescription { return s.floor }

// FloorIndex returns the current depth, starting at zero.
func (s *Session) FloorIndex() int { return s.floorIdx }

// PlayerID returns the player entity's ID in the current world.
func (s *Session) PlayerID() ecs.EntityID { return s.playerID }

// RunID returns the unique identifier of this run.
func (s *Session) RunID() string { return s.runLog.ID }
