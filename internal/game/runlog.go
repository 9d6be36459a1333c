package game

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// RunLog records statistics gathered during one run.
type RunLog struct {
	ID            string         `json:"id"`
	SeedName      string         `json:"seed_name"`
	FloorsReached int            `json:"floors_reached"`
	TicksPlayed   uint64         `json:"ticks_played"`
	EnemiesKilled map[string]int `json:"enemies_killed"` // archetype ref → kill count
	LootCollected map[string]int `json:"loot_collected"` // loot ref → pickup count
	DamageDealt   float64        `json:"damage_dealt"`
	DamageTaken   float64        `json:"damage_taken"`
	CauseOfDeath  string         `json:"cause_of_death,omitempty"`
}

// saveRunLog appends the completed run as a single JSON line to runs.jsonl.
// Errors are silently discarded so a disk problem never crashes the game.
func saveRunLog(log RunLog) {
	dir, err := runLogDir()
	if err != nil {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(log)
	if err != nil {
		return
	}
	f.Write(data)         //nolint:errcheck — best-effort write
	f.Write([]byte("\n")) //nolint:errcheck
}

// runLogDir returns the directory where run logs are stored.
// Follows XDG Base Directory spec: $XDG_DATA_HOME/infinite-tower,
// defaulting to ~/.local/share/infinite-tower.
func runLogDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "infinite-tower"), nil
}
