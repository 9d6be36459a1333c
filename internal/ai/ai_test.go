package ai

import (
	"testing"

	"infinite-tower/internal/vec"
)

// testParams returns a melee parameter set with convenient round numbers.
func testParams(fleeThreshold float64) Params {
	return Params{
		FleeThreshold:  fleeThreshold,
		DetectionRange: 40,
		AttackRange:    10,
		AttackInterval: 1.0,
		MoveSpeed:      4.0,
	}
}

func mustAgent(t *testing.T, p Personality, params Params, pos vec.Vec2) *Agent {
	t.Helper()
	a, err := NewAgentWithParams(1, p, params, pos, 100)
	if err != nil {
		t.Fatalf("NewAgentWithParams: %v", err)
	}
	return a
}

func tick(e *Engine, a *Agent, snap Snapshot) Intent {
	return e.Advance([]*Agent{a}, snap, 0.125)[0]
}

func TestNewAgentRejectsMalformedParams(t *testing.T) {
	bad := []Params{
		{FleeThreshold: -0.1, DetectionRange: 10, AttackRange: 5, AttackInterval: 1, MoveSpeed: 1},
		{DetectionRange: -5, AttackRange: 1, AttackInterval: 1, MoveSpeed: 1},
		{DetectionRange: 10, AttackRange: 20, AttackInterval: 1, MoveSpeed: 1},
		{DetectionRange: 10, AttackRange: 5, AttackInterval: 0, MoveSpeed: 1},
		{DetectionRange: 10, AttackRange: 5, AttackInterval: 1, MoveSpeed: -2},
		{DetectionRange: 10, AttackRange: 5, AttackInterval: 1, MoveSpeed: 1, MinEngageRange: 9},
	}
	for i, p := range bad {
		if _, err := NewAgentWithParams(1, Aggressive, p, vec.Vec2{}, 100); err == nil {
			t.Errorf("case %d: malformed params accepted", i)
		}
	}
}

func TestShippedParamTableValid(t *testing.T) {
	for _, p := range []Personality{Aggressive, Defensive, Coward, Tank, Ranger} {
		if err := ParamsFor(p).Validate(); err != nil {
			t.Errorf("%s: shipped params invalid: %v", p, err)
		}
	}
}

func TestAgentStartsIdle(t *testing.T) {
	a, err := NewAgent(7, Tank, vec.Vec2{X: 3, Y: 3}, 200)
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}
	if a.State != StateIdle {
		t.Errorf("new agent in state %v, want idle", a.State)
	}
}

// TestIdleChaseAttackProgression drives an aggressive agent from distance 50
// through detection range 40 and attack range 10, asserting the
// Idle → Chase → Attack ladder with no direct Idle → Attack jump.
func TestIdleChaseAttackProgression(t *testing.T) {
	e := NewEngine(1)
	a := mustAgent(t, Aggressive, testParams(0), vec.Vec2{X: 0, Y: 0})
	target := vec.Vec2{X: 50, Y: 0}
	snap := Snapshot{TargetPos: target, TargetValid: true}

	tick(e, a, snap)
	if a.State != StateIdle {
		t.Fatalf("at distance 50: state %v, want idle", a.State)
	}

	a.Pos = vec.Vec2{X: 15, Y: 0} // distance 35, inside detection
	it := tick(e, a, snap)
	if a.State != StateChase {
		t.Fatalf("at distance 35: state %v, want chase", a.State)
	}
	if it.Velocity.X <= 0 {
		t.Errorf("chase velocity %v should point toward the target", it.Velocity)
	}

	a.Pos = vec.Vec2{X: 42, Y: 0} // distance 8, inside attack range
	tick(e, a, snap)
	if a.State != StateAttack {
		t.Fatalf("at distance 8: state %v, want attack", a.State)
	}
}

func TestNoDirectIdleToAttackJump(t *testing.T) {
	e := NewEngine(1)
	a := mustAgent(t, Aggressive, testParams(0), vec.Vec2{X: 0, Y: 0})
	snap := Snapshot{TargetPos: vec.Vec2{X: 5, Y: 0}, TargetValid: true}

	// Target already inside attack range: the first tick still lands in
	// Chase, never straight in Attack.
	tick(e, a, snap)
	if a.State != StateChase {
		t.Errorf("idle agent with adjacent target moved to %v, want chase", a.State)
	}
}

// TestCowardFleesMidAttack drops a coward from 100 to 15 health (threshold
// 20%) while it is attacking; the next tick must flee regardless of range.
func TestCowardFleesMidAttack(t *testing.T) {
	e := NewEngine(1)
	params := testParams(0.2)
	a := mustAgent(t, Coward, params, vec.Vec2{X: 0, Y: 0})
	snap := Snapshot{TargetPos: vec.Vec2{X: 5, Y: 0}, TargetValid: true}

	tick(e, a, snap)
	tick(e, a, snap)
	if a.State != StateAttack {
		t.Fatalf("setup: state %v, want attack", a.State)
	}

	a.Health = 15
	it := tick(e, a, snap)
	if a.State != StateFlee {
		t.Fatalf("after health drop: state %v, want flee", a.State)
	}
	if it.Velocity.X >= 0 {
		t.Errorf("flee velocity %v should point away from the target", it.Velocity)
	}
}

func TestFleePriorityBeatsDetection(t *testing.T) {
	for _, from := range []State{StateIdle, StatePatrol, StateChase, StateAttack, StateWander} {
		e := NewEngine(1)
		a := mustAgent(t, Defensive, testParams(0.25), vec.Vec2{})
		a.State = from
		a.Health = 10
		tick(e, a, Snapshot{TargetPos: vec.Vec2{X: 2, Y: 0}, TargetValid: true})
		if a.State != StateFlee {
			t.Errorf("from %v with low health: state %v, want flee", from, a.State)
		}
	}
}

func TestFleeHysteresis(t *testing.T) {
	e := NewEngine(1)
	a := mustAgent(t, Coward, testParams(0.5), vec.Vec2{})
	a.State = StateFlee
	snap := Snapshot{TargetPos: vec.Vec2{X: 3, Y: 0}, TargetValid: true}

	// Just above the threshold is still inside the hysteresis band.
	a.Health = 55
	tick(e, a, snap)
	if a.State != StateFlee {
		t.Errorf("at ratio 0.55: state %v, want flee (hysteresis)", a.State)
	}

	a.Health = 65
	tick(e, a, snap)
	if a.State != StateIdle {
		t.Errorf("at ratio 0.65: state %v, want idle", a.State)
	}
}

func TestFleeEndsWhenTargetGone(t *testing.T) {
	e := NewEngine(1)
	a := mustAgent(t, Coward, testParams(0.5), vec.Vec2{})
	a.State = StateFlee
	a.Health = 10

	gone := Snapshot{TargetValid: false}
	for i := 0; i < 23; i++ {
		tick(e, a, gone)
	}
	if a.State != StateFlee {
		t.Fatalf("still inside the lost-target grace: state %v, want flee", a.State)
	}
	tick(e, a, gone) // crosses 3.0 s at 0.125 s per tick
	if a.State != StateIdle {
		t.Errorf("after lost-target grace: state %v, want idle", a.State)
	}
}

// TestChaseLossDecay breaks a chase after the target has stayed beyond
// detection × loss multiplier for the grace period, resuming patrol when a
// route exists.
func TestChaseLossDecay(t *testing.T) {
	for _, withPatrol := range []bool{true, false} {
		e := NewEngine(1)
		a := mustAgent(t, Aggressive, testParams(0), vec.Vec2{})
		if withPatrol {
			a.SetPatrol([]vec.Vec2{{X: 0, Y: 0}, {X: 5, Y: 0}})
		}
		a.State = StateChase
		// Beyond 40 × 1.5 = 60.
		far := Snapshot{TargetPos: vec.Vec2{X: 70, Y: 0}, TargetValid: true}

		for i := 0; i < 12; i++ { // 1.5 s at 0.125 s per tick
			tick(e, a, far)
		}
		want := StateIdle
		if withPatrol {
			want = StatePatrol
		}
		if a.State != want {
			t.Errorf("withPatrol=%v: state %v after loss decay, want %v", withPatrol, a.State, want)
		}
	}
}

func TestChaseHoldsWithinLossWindow(t *testing.T) {
	e := NewEngine(1)
	a := mustAgent(t, Aggressive, testParams(0), vec.Vec2{})
	a.State = StateChase
	a.LastKnownTarget = vec.Vec2{X: 50, Y: 0}
	a.HasLastKnownTarget = true

	// Distance 50 is outside detection (40) but inside the loss window
	// (60): the chase continues toward the last known position.
	snap := Snapshot{TargetPos: vec.Vec2{X: 50, Y: 0}, TargetValid: true}
	it := tick(e, a, snap)
	if a.State != StateChase {
		t.Fatalf("state %v, want chase inside loss window", a.State)
	}
	if it.Velocity.X <= 0 {
		t.Errorf("velocity %v should keep closing on the last known position", it.Velocity)
	}
}

func TestDanglingTargetBreaksEngagement(t *testing.T) {
	for _, from := range []State{StateChase, StateAttack} {
		e := NewEngine(1)
		a := mustAgent(t, Aggressive, testParams(0), vec.Vec2{})
		a.State = from
		tick(e, a, Snapshot{TargetValid: false})
		if a.State != StateIdle {
			t.Errorf("from %v with removed target: state %v, want idle", from, a.State)
		}
	}
}

func TestAttackCooldownGatesIntents(t *testing.T) {
	e := NewEngine(1)
	a := mustAgent(t, Aggressive, testParams(0), vec.Vec2{})
	a.State = StateAttack
	snap := Snapshot{TargetPos: vec.Vec2{X: 5, Y: 0}, TargetValid: true}

	it := tick(e, a, snap)
	if it.Attack == nil {
		t.Fatal("first attack tick should emit an attack intent")
	}
	if it.Attack.Kind != AttackMelee {
		t.Errorf("melee personality emitted %v", it.Attack.Kind)
	}
	if it.Velocity != (vec.Vec2{}) {
		t.Errorf("attacking agent should not move, got velocity %v", it.Velocity)
	}

	// Cooldown is 1.0 s; seven more 0.125 s ticks stay silent.
	for i := 0; i < 7; i++ {
		if it := tick(e, a, snap); it.Attack != nil {
			t.Fatalf("tick %d emitted an attack while on cooldown", i)
		}
	}
	if it := tick(e, a, snap); it.Attack == nil {
		t.Error("attack intent missing after cooldown elapsed")
	}
}

func TestRangerEmitsRangedAttacks(t *testing.T) {
	e := NewEngine(1)
	params := testParams(0)
	params.PrefersRanged = true
	params.MinEngageRange = 4
	a := mustAgent(t, Ranger, params, vec.Vec2{})
	a.State = StateAttack

	it := tick(e, a, Snapshot{TargetPos: vec.Vec2{X: 6, Y: 0}, TargetValid: true})
	if it.Attack == nil || it.Attack.Kind != AttackRanged {
		t.Errorf("ranger attack intent = %+v, want ranged", it.Attack)
	}
}

// TestRangerStandOffBand exercises the three zones of the ranger band
// directly against the chase movement.
func TestRangerStandOffBand(t *testing.T) {
	params := testParams(0)
	params.PrefersRanged = true
	params.MinEngageRange = 4
	a := mustAgent(t, Ranger, params, vec.Vec2{})

	// Crowded: target at distance 2 < 4 — back away.
	v := a.standOffVelocity(vec.Vec2{X: 2, Y: 0})
	if v.X >= 0 {
		t.Errorf("crowded ranger velocity %v, want retreat", v)
	}
	// In band: distance 7 within [4, 10] — hold.
	if v := a.standOffVelocity(vec.Vec2{X: 7, Y: 0}); v != (vec.Vec2{}) {
		t.Errorf("in-band ranger velocity %v, want zero", v)
	}
	// Too far: distance 20 — close in.
	if v := a.standOffVelocity(vec.Vec2{X: 20, Y: 0}); v.X <= 0 {
		t.Errorf("distant ranger velocity %v, want approach", v)
	}
}

func TestPatrolCyclesOnArrival(t *testing.T) {
	e := NewEngine(1)
	a := mustAgent(t, Defensive, testParams(0), vec.Vec2{X: 0, Y: 0})
	a.SetPatrol([]vec.Vec2{{X: 0, Y: 0}, {X: 10, Y: 0}})
	a.State = StatePatrol
	snap := Snapshot{TargetValid: false}

	// Standing on point 0: the route advances and the agent heads for
	// point 1.
	it := tick(e, a, snap)
	if a.PatrolIndex != 1 {
		t.Fatalf("patrol index %d, want 1 after arrival", a.PatrolIndex)
	}
	if it.Velocity.X <= 0 {
		t.Errorf("patrol velocity %v should head for the next point", it.Velocity)
	}

	a.Pos = vec.Vec2{X: 10, Y: 0}
	tick(e, a, snap)
	if a.PatrolIndex != 0 {
		t.Errorf("patrol index %d, want cyclic wrap to 0", a.PatrolIndex)
	}
}

func TestIdleWithPatrolPointsStartsPatrolling(t *testing.T) {
	e := NewEngine(1)
	a := mustAgent(t, Tank, testParams(0), vec.Vec2{})
	a.SetPatrol([]vec.Vec2{{X: 3, Y: 0}})
	tick(e, a, Snapshot{TargetValid: false})
	if a.State != StatePatrol {
		t.Errorf("idle agent with a route in state %v, want patrol", a.State)
	}
}

func TestIdleEventuallyWanders(t *testing.T) {
	e := NewEngine(1)
	a := mustAgent(t, Aggressive, testParams(0), vec.Vec2{})
	snap := Snapshot{TargetValid: false}
	for i := 0; i < 24; i++ { // 3.0 s of idling at 0.125 s ticks
		tick(e, a, snap)
	}
	if a.State != StateWander {
		t.Errorf("state %v after idle delay, want wander", a.State)
	}
}

// TestWanderRerollsOnlyOnArrivalOrTimeout verifies that mid-course wander
// ticks consume no randomness: the heading stays fixed between re-rolls.
func TestWanderRerollsOnlyOnArrivalOrTimeout(t *testing.T) {
	e := NewEngine(42)
	a := mustAgent(t, Aggressive, testParams(0), vec.Vec2{})
	a.State = StateWander
	snap := Snapshot{TargetValid: false}

	first := tick(e, a, snap)
	target := a.wanderTarget
	second := tick(e, a, snap)
	if a.wanderTarget != target {
		t.Error("wander target re-rolled mid-course")
	}
	if first.Velocity != second.Velocity {
		t.Errorf("wander heading drifted without a re-roll: %v vs %v", first.Velocity, second.Velocity)
	}
}

func TestWanderAvoidsBlockedGround(t *testing.T) {
	e := NewEngine(7)
	a := mustAgent(t, Aggressive, testParams(0), vec.Vec2{X: 10, Y: 10})
	a.State = StateWander
	// Only points left of x=10 are open.
	snap := Snapshot{TargetValid: false, Walkable: func(p vec.Vec2) bool { return p.X < 10 }}
	tick(e, a, snap)
	if !a.hasWanderTarget {
		t.Fatal("wander tick picked no target")
	}
	d := a.wanderTarget.Sub(a.Pos).Len()
	if d < wanderMinDist-1e-9 || d > wanderMaxDist+1e-9 {
		t.Errorf("wander target %v at distance %.2f outside [%v, %v]",
			a.wanderTarget, d, wanderMinDist, wanderMaxDist)
	}
}

// TestAdvanceDeterministic runs the same agent state against the same
// snapshot through two independent engines and expects identical output —
// transitions consume no randomness.
func TestAdvanceDeterministic(t *testing.T) {
	build := func() *Agent {
		a := mustAgent(t, Aggressive, testParams(0), vec.Vec2{X: 1, Y: 2})
		a.State = StateChase
		a.LastKnownTarget = vec.Vec2{X: 9, Y: 2}
		a.HasLastKnownTarget = true
		return a
	}
	snap := Snapshot{TargetPos: vec.Vec2{X: 9, Y: 2}, TargetValid: true}

	a1, a2 := build(), build()
	i1 := NewEngine(1).Advance([]*Agent{a1}, snap, 0.1)
	i2 := NewEngine(99).Advance([]*Agent{a2}, snap, 0.1)

	if a1.State != a2.State {
		t.Errorf("states diverged: %v vs %v", a1.State, a2.State)
	}
	if !sameIntent(i1[0], i2[0]) {
		t.Errorf("intents diverged: %+v vs %+v", i1[0], i2[0])
	}
	if i1[0].Attack == nil {
		t.Error("chase scenario in reach emitted no attack intent")
	}
}

// sameIntent compares intents by value. Attack is carried as a pointer, so
// == on Intent would compare allocation identity instead of payload.
func sameIntent(a, b Intent) bool {
	if a.AgentID != b.AgentID || a.Velocity != b.Velocity {
		return false
	}
	if (a.Attack == nil) != (b.Attack == nil) {
		return false
	}
	return a.Attack == nil || *a.Attack == *b.Attack
}

// TestAdvanceFrameCoherent checks that one agent's intent does not depend
// on another agent's evaluation order within the tick.
func TestAdvanceFrameCoherent(t *testing.T) {
	mk := func() []*Agent {
		var agents []*Agent
		for i := 0; i < 4; i++ {
			a := mustAgent(t, Aggressive, testParams(0), vec.Vec2{X: float64(i), Y: 0})
			a.ID = uint64(i + 1)
			a.State = StateChase
			a.LastKnownTarget = vec.Vec2{X: 20, Y: 0}
			a.HasLastKnownTarget = true
			agents = append(agents, a)
		}
		return agents
	}
	snap := Snapshot{TargetPos: vec.Vec2{X: 20, Y: 0}, TargetValid: true}

	forward := NewEngine(1).Advance(mk(), snap, 0.1)

	reversed := mk()
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	backward := NewEngine(1).Advance(reversed, snap, 0.1)

	byID := make(map[uint64]Intent)
	for _, it := range backward {
		byID[it.AgentID] = it
	}
	for _, it := range forward {
		if other := byID[it.AgentID]; !sameIntent(it, other) {
			t.Errorf("agent %d intent depends on evaluation order: %+v vs %+v", it.AgentID, it, other)
		}
	}
}
