package system

import (
	"math"

	"infinite-tower/internal/ai"
	"infinite-tower/internal/component"
	"infinite-tower/internal/ecs"
	"infinite-tower/internal/vec"
)

// rangedGrace widens the hit check for ranged attacks, since the shot was
// aimed at where the target stood when the intent was raised.
const rangedGrace = 0.5

// AttackEvent records one resolved hit for the session log.
type AttackEvent struct {
	Attacker ecs.EntityID
	Defender ecs.EntityID
	Kind     ai.AttackKind
	Damage   float64
	Killed   bool
}

// RunCombat resolves attack intents raised during the behavior tick.
// An attack lands when the defender is still within the attacker's reach;
// intents whose attacker or defender died earlier in the tick are dropped.
// Dead defenders are destroyed immediately.
func RunCombat(w *ecs.World, attacks []ai.Intent) []AttackEvent {
	var events []AttackEvent
	for _, it := range attacks {
		attacker := ecs.EntityID(it.AgentID)
		if !w.Alive(attacker) {
			continue
		}
		brain := w.Get(attacker, component.CBrain)
		cbt := w.Get(attacker, component.CCombat)
		apos := w.Get(attacker, component.CPosition)
		if brain == nil || cbt == nil || apos == nil {
			continue
		}

		players := w.Query(component.CTagPlayer, component.CPosition, component.CHealth)
		if len(players) == 0 {
			continue
		}
		defender := players[0]
		dpos := w.Get(defender, component.CPosition).(component.Position)

		agent := brain.(component.Brain).Agent
		reach := agent.Params.AttackRange
		if it.Attack.Kind == ai.AttackRanged {
			reach += rangedGrace
		}
		dist := math.Sqrt(vec.Dist2(apos.(component.Position).Pos, dpos.Pos))
		if dist > reach {
			continue
		}

		dmg := cbt.(component.Combat).Damage
		hp := w.Get(defender, component.CHealth).(component.Health)
		hp.Current -= dmg
		killed := hp.Current <= 0
		w.Add(defender, hp)

		events = append(events, AttackEvent{
			Attacker: attacker,
			Defender: defender,
			Kind:     it.Attack.Kind,
			Damage:   dmg,
			Killed:   killed,
		})
		if killed {
			w.DestroyEntity(defender)
		}
	}
	return events
}

// Damage applies a direct hit to any entity with health, destroying it at
// zero. Used for player attacks against enemies.
func Damage(w *ecs.World, id ecs.EntityID, amount float64) (killed bool) {
	c := w.Get(id, component.CHealth)
	if c == nil {
		return false
	}
	hp := c.(component.Health)
	hp.Current -= amount
	w.Add(id, hp)
	if hp.Current <= 0 {
		w.DestroyEntity(id)
		return true
	}
	return false
}
