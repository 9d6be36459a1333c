// Package ai runs the per-agent behavior state machine for every hostile on
// a floor. Each tick the engine reads agent state plus a read-only world
// snapshot and emits buffered movement and attack intents; it never writes
// positions or health — those belong to the physics and combat
// collaborators.
package ai

import (
	"math"
	"math/rand"

	"infinite-tower/internal/vec"
)

// Tuning constants for the transition table. The source material leaves
// these open; the values here are locked by the package tests.
const (
	// lossMultiplier widens the detection radius while a chase is live;
	// the target must stay beyond detection*lossMultiplier for
	// lossGraceTime seconds before the agent breaks off.
	lossMultiplier = 1.5
	lossGraceTime  = 1.5

	// fleeHysteresis keeps an agent fleeing until its health ratio climbs
	// this far above the flee threshold, so it cannot flicker at the
	// boundary.
	fleeHysteresis = 0.10
	// fleeLostTime ends a flee whose target has been gone this long.
	fleeLostTime = 3.0

	arrivalTolerance = 0.35
	idleWanderDelay  = 3.0
	wanderMinDist    = 1.5
	wanderMaxDist    = 4.5
	wanderTimeout    = 2.0
)

// Snapshot is the read-only view of the world an agent evaluates against.
// One snapshot serves every agent of a tick, so an agent's movement can
// never change another agent's distance math mid-tick.
type Snapshot struct {
	TargetPos   vec.Vec2
	TargetValid bool

	// Walkable reports whether a position is open ground. Nil means
	// unobstructed; the engine only consults it to avoid aiming wander
	// moves into walls.
	Walkable func(vec.Vec2) bool
}

// AttackKind separates melee swings from ranged shots.
type AttackKind uint8

const (
	AttackMelee AttackKind = iota
	AttackRanged
)

// AttackIntent asks the combat collaborator to resolve one attack.
type AttackIntent struct {
	Kind   AttackKind
	Target vec.Vec2
}

// Intent is one agent's buffered output for a tick: a movement velocity for
// the physics collaborator and an optional attack.
type Intent struct {
	AgentID  uint64
	Velocity vec.Vec2
	Attack   *AttackIntent
}

// Engine advances agents. Its RNG feeds wander target re-rolls and nothing
// else; every transition is a pure function of (agent, snapshot).
type Engine struct {
	rng *rand.Rand
}

// NewEngine creates an engine whose wander decisions draw from the given
// seed.
func NewEngine(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// Advance runs one simulation tick over all agents and returns one intent
// per agent in input order. Agents are mutually independent: each reads
// only its own fields plus the shared snapshot, and all outputs are
// buffered into the returned slice rather than applied.
func (e *Engine) Advance(agents []*Agent, snap Snapshot, dt float64) []Intent {
	intents := make([]Intent, 0, len(agents))
	for _, a := range agents {
		if a == nil {
			continue
		}
		if a.Cooldown > 0 {
			a.Cooldown -= dt
			if a.Cooldown < 0 {
				a.Cooldown = 0
			}
		}
		e.transition(a, snap, dt)
		intents = append(intents, e.act(a, snap, dt))
	}
	return intents
}

// transition evaluates the priority-ordered transition table once. The
// first matching rule wins; the flee check always runs first.
func (e *Engine) transition(a *Agent, snap Snapshot, dt float64) {
	p := a.Params

	// Flee beats everything else for personalities with a threshold.
	if a.State != StateFlee && a.HealthRatio() < p.FleeThreshold {
		a.State = StateFlee
		a.fleeLostTime = 0
		return
	}

	if a.State == StateFlee {
		if !snap.TargetValid {
			a.fleeLostTime += dt
			if a.fleeLostTime >= fleeLostTime {
				a.State = StateIdle
				a.idleTime = 0
			}
			return
		}
		a.fleeLostTime = 0
		if a.HealthRatio() > p.FleeThreshold+fleeHysteresis {
			a.State = StateIdle
			a.idleTime = 0
		}
		return
	}

	d2 := math.Inf(1)
	if snap.TargetValid {
		d2 = vec.Dist2(a.Pos, snap.TargetPos)
	}

	switch a.State {
	case StateIdle, StateWander, StatePatrol:
		if snap.TargetValid && d2 <= sq(p.DetectionRange) {
			a.State = StateChase
			a.lostTime = 0
			a.LastKnownTarget = snap.TargetPos
			a.HasLastKnownTarget = true
			return
		}
		if a.State == StateIdle {
			if len(a.PatrolPoints) > 0 {
				a.State = StatePatrol
				return
			}
			a.idleTime += dt
			if a.idleTime >= idleWanderDelay {
				a.State = StateWander
				a.hasWanderTarget = false
				a.idleTime = 0
			}
		}

	case StateChase:
		// A removed target ends the engagement on the next tick.
		if !snap.TargetValid {
			a.breakOff()
			return
		}
		if d2 <= sq(p.AttackRange) {
			a.State = StateAttack
			return
		}
		if d2 > sq(p.DetectionRange*lossMultiplier) {
			a.lostTime += dt
			if a.lostTime >= lossGraceTime {
				a.breakOff()
			}
			return
		}
		a.lostTime = 0
		if d2 <= sq(p.DetectionRange) {
			a.LastKnownTarget = snap.TargetPos
			a.HasLastKnownTarget = true
		}

	case StateAttack:
		if !snap.TargetValid {
			a.breakOff()
			return
		}
		if d2 > sq(p.AttackRange) {
			a.State = StateChase
			a.lostTime = 0
		}
	}
}

// breakOff drops an engagement, resuming the patrol route when one exists.
func (a *Agent) breakOff() {
	a.lostTime = 0
	a.HasLastKnownTarget = false
	if len(a.PatrolPoints) > 0 {
		a.State = StatePatrol
	} else {
		a.State = StateIdle
		a.idleTime = 0
	}
}

// act produces the buffered intent for the agent's current state.
func (e *Engine) act(a *Agent, snap Snapshot, dt float64) Intent {
	intent := Intent{AgentID: a.ID}

	switch a.State {
	case StatePatrol:
		intent.Velocity = a.patrolVelocity()

	case StateChase:
		target := snap.TargetPos
		if !snap.TargetValid || vec.Dist2(a.Pos, snap.TargetPos) > sq(a.Params.DetectionRange) {
			if !a.HasLastKnownTarget {
				break
			}
			target = a.LastKnownTarget
		}
		if a.Params.PrefersRanged {
			intent.Velocity = a.standOffVelocity(target)
		} else {
			intent.Velocity = velocityToward(a.Pos, target, a.Params.MoveSpeed)
		}

	case StateAttack:
		if a.Cooldown <= 0 {
			kind := AttackMelee
			if a.Params.PrefersRanged {
				kind = AttackRanged
			}
			intent.Attack = &AttackIntent{Kind: kind, Target: snap.TargetPos}
			a.Cooldown = a.Params.AttackInterval
		}

	case StateFlee:
		from := snap.TargetPos
		if !snap.TargetValid {
			if !a.HasLastKnownTarget {
				break
			}
			from = a.LastKnownTarget
		}
		away := a.Pos.Sub(from).Normalized()
		intent.Velocity = away.Scale(a.Params.MoveSpeed)

	case StateWander:
		intent.Velocity = e.wanderVelocity(a, snap, dt)
	}
	return intent
}

// patrolVelocity moves toward the current patrol point and advances the
// route cyclically on arrival.
func (a *Agent) patrolVelocity() vec.Vec2 {
	if len(a.PatrolPoints) == 0 {
		return vec.Vec2{}
	}
	goal := a.PatrolPoints[a.PatrolIndex]
	if vec.Dist2(a.Pos, goal) <= sq(arrivalTolerance) {
		a.PatrolIndex = (a.PatrolIndex + 1) % len(a.PatrolPoints)
		goal = a.PatrolPoints[a.PatrolIndex]
	}
	return velocityToward(a.Pos, goal, a.Params.MoveSpeed)
}

// standOffVelocity keeps a ranger inside its preferred band: back out when
// the target crowds past the minimum engage range, hold inside the band,
// close when the target drifts beyond attack range.
func (a *Agent) standOffVelocity(target vec.Vec2) vec.Vec2 {
	d2 := vec.Dist2(a.Pos, target)
	switch {
	case d2 < sq(a.Params.MinEngageRange):
		away := a.Pos.Sub(target).Normalized()
		return away.Scale(a.Params.MoveSpeed)
	case d2 <= sq(a.Params.AttackRange):
		return vec.Vec2{}
	default:
		return velocityToward(a.Pos, target, a.Params.MoveSpeed)
	}
}

// wanderVelocity drifts toward the current wander point, re-rolling it on
// arrival or timeout. This is the only place engine randomness is consumed.
func (e *Engine) wanderVelocity(a *Agent, snap Snapshot, dt float64) vec.Vec2 {
	a.wanderTime += dt
	if !a.hasWanderTarget ||
		a.wanderTime >= wanderTimeout ||
		vec.Dist2(a.Pos, a.wanderTarget) <= sq(arrivalTolerance) {
		a.wanderTarget = e.rollWanderTarget(a, snap)
		a.hasWanderTarget = true
		a.wanderTime = 0
	}
	return velocityToward(a.Pos, a.wanderTarget, a.Params.MoveSpeed)
}

// rollWanderTarget picks a nearby point, preferring open ground when the
// snapshot can answer walkability.
func (e *Engine) rollWanderTarget(a *Agent, snap Snapshot) vec.Vec2 {
	const attempts = 5
	var candidate vec.Vec2
	for i := 0; i < attempts; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		dist := wanderMinDist + e.rng.Float64()*(wanderMaxDist-wanderMinDist)
		candidate = a.Pos.Add(vec.Vec2{X: math.Cos(angle) * dist, Y: math.Sin(angle) * dist})
		if snap.Walkable == nil || snap.Walkable(candidate) {
			return candidate
		}
	}
	return candidate
}

func velocityToward(from, to vec.Vec2, speed float64) vec.Vec2 {
	return to.Sub(from).Normalized().Scale(speed)
}

func sq(v float64) float64 { return v * v }
