package ai

import (
	"fmt"

	"infinite-tower/internal/vec"
)

// State is one node of the per-agent behavior state machine.
type State uint8

const (
	StateIdle State = iota
	StatePatrol
	StateChase
	StateAttack
	StateFlee
	StateWander
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePatrol:
		return "patrol"
	case StateChase:
		return "chase"
	case StateAttack:
		return "attack"
	case StateFlee:
		return "flee"
	case StateWander:
		return "wander"
	default:
		return "unknown"
	}
}

// Agent is one live AI-controlled hostile. The engine owns State, the
// cooldowns, and the patrol/wander bookkeeping. Pos is written by the
// physics collaborator and Health by the combat collaborator between ticks;
// the engine only reads them.
type Agent struct {
	ID          uint64
	Personality Personality
	Params      Params

	Pos       vec.Vec2
	Health    float64
	MaxHealth float64

	State        State
	Cooldown     float64 // seconds until the next attack may fire
	PatrolPoints []vec.Vec2
	PatrolIndex  int

	LastKnownTarget    vec.Vec2
	HasLastKnownTarget bool

	// internal timers, all in seconds
	lostTime     float64 // time the chase target has been out of range
	fleeLostTime float64 // time fleeing without a valid target
	idleTime     float64 // time idling before a wander kicks in
	wanderTime   float64 // time spent moving toward the current wander point

	wanderTarget    vec.Vec2
	hasWanderTarget bool
}

// NewAgent creates an Idle agent with the shipped parameter table for its
// personality. Malformed parameters are a configuration error surfaced
// here, never during ticking.
func NewAgent(id uint64, p Personality, pos vec.Vec2, maxHealth float64) (*Agent, error) {
	return NewAgentWithParams(id, p, ParamsFor(p), pos, maxHealth)
}

// NewAgentWithParams creates an agent with explicit parameters, validating
// them first.
func NewAgentWithParams(id uint64, p Personality, params Params, pos vec.Vec2, maxHealth float64) (*Agent, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("agent %d (%s): %w", id, p, err)
	}
	if maxHealth <= 0 {
		return nil, fmt.Errorf("agent %d (%s): max health %.2f must be positive", id, p, maxHealth)
	}
	return &Agent{
		ID:          id,
		Personality: p,
		Params:      params,
		Pos:         pos,
		Health:      maxHealth,
		MaxHealth:   maxHealth,
		State:       StateIdle,
	}, nil
}

// HealthRatio returns current health as a fraction of max.
func (a *Agent) HealthRatio() float64 {
	if a.MaxHealth <= 0 {
		return 0
	}
	return a.Health / a.MaxHealth
}

// SetPatrol installs a cyclic patrol route and resets the route index.
func (a *Agent) SetPatrol(points []vec.Vec2) {
	a.PatrolPoints = points
	a.PatrolIndex = 0
}
