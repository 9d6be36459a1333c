package ai

import "fmt"

// Personality selects an agent's fixed behavioral parameter set. Behavior
// differences between personalities live entirely in the parameter table;
// the state machine itself is shared by all of them.
type Personality uint8

const (
	Aggressive Personality = iota
	Defensive
	Coward
	Tank
	Ranger
)

// String returns the lowercase personality name.
func (p Personality) String() string {
	switch p {
	case Aggressive:
		return "aggressive"
	case Defensive:
		return "defensive"
	case Coward:
		return "coward"
	case Tank:
		return "tank"
	case Ranger:
		return "ranger"
	default:
		return "unknown"
	}
}

// Params is the behavioral parameter set one personality supplies to the
// state machine. Ranges and speeds are in tile units, intervals in seconds.
type Params struct {
	FleeThreshold  float64 // flee below this health ratio; 0 never flees
	DetectionRange float64
	AttackRange    float64
	AttackInterval float64
	MoveSpeed      float64
	PrefersRanged  bool
	MinEngageRange float64 // rangers back away inside this distance
}

// Validate reports a configuration error for malformed parameters. Called
// at agent creation, never during ticking.
func (p Params) Validate() error {
	if p.FleeThreshold < 0 || p.FleeThreshold >= 1 {
		return fmt.Errorf("flee threshold %.2f outside [0, 1)", p.FleeThreshold)
	}
	if p.DetectionRange <= 0 {
		return fmt.Errorf("detection range %.2f must be positive", p.DetectionRange)
	}
	if p.AttackRange <= 0 || p.AttackRange > p.DetectionRange {
		return fmt.Errorf("attack range %.2f must be in (0, detection range %.2f]",
			p.AttackRange, p.DetectionRange)
	}
	if p.AttackInterval <= 0 {
		return fmt.Errorf("attack interval %.2f must be positive", p.AttackInterval)
	}
	if p.MoveSpeed <= 0 {
		return fmt.Errorf("move speed %.2f must be positive", p.MoveSpeed)
	}
	if p.MinEngageRange < 0 || p.MinEngageRange > p.AttackRange {
		return fmt.Errorf("min engage range %.2f must be in [0, attack range %.2f]",
			p.MinEngageRange, p.AttackRange)
	}
	return nil
}

// paramTable holds the shipped tuning per personality. Tanks spot trouble
// from far away but close in slowly and never flee; cowards break off at
// half health; rangers fight from a stand-off band.
var paramTable = map[Personality]Params{
	Aggressive: {
		FleeThreshold:  0,
		DetectionRange: 8.0,
		AttackRange:    1.5,
		AttackInterval: 1.0,
		MoveSpeed:      3.0,
	},
	Defensive: {
		FleeThreshold:  0.15,
		DetectionRange: 5.0,
		AttackRange:    1.8,
		AttackInterval: 1.2,
		MoveSpeed:      2.5,
	},
	Coward: {
		FleeThreshold:  0.5,
		DetectionRange: 6.5,
		AttackRange:    1.25,
		AttackInterval: 0.9,
		MoveSpeed:      3.5,
	},
	Tank: {
		FleeThreshold:  0,
		DetectionRange: 9.0,
		AttackRange:    2.2,
		AttackInterval: 1.6,
		MoveSpeed:      1.8,
	},
	Ranger: {
		FleeThreshold:  0.3,
		DetectionRange: 10.0,
		AttackRange:    5.0,
		AttackInterval: 1.4,
		MoveSpeed:      2.8,
		PrefersRanged:  true,
		MinEngageRange: 2.5,
	},
}

// ParamsFor returns the shipped parameter set for a personality.
func ParamsFor(p Personality) Params {
	return paramTable[p]
}
