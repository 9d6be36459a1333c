package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sim.TickRate != Default().Sim.TickRate {
		t.Errorf("tick rate = %d, want default %d", cfg.Sim.TickRate, Default().Sim.TickRate)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.yaml")
	body := []byte("sim:\n  tick_rate: 60\n  seed_name: Alice\nobserver:\n  listen_addr: \"0.0.0.0:9000\"\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sim.TickRate != 60 {
		t.Errorf("tick rate = %d, want 60", cfg.Sim.TickRate)
	}
	if cfg.Sim.SeedName != "Alice" {
		t.Errorf("seed name = %q, want Alice", cfg.Sim.SeedName)
	}
	if cfg.Observer.ListenAddr != "0.0.0.0:9000" {
		t.Errorf("listen addr = %q", cfg.Observer.ListenAddr)
	}
	// Untouched sections keep their defaults.
	if cfg.Sim.PlayerHealth != 100 {
		t.Errorf("player health = %v, want default 100", cfg.Sim.PlayerHealth)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tower.yaml")
	if err := os.WriteFile(path, []byte("sim:\n  tick_rate: -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for negative tick rate")
	}
}

func TestDifficultyForIsMonotone(t *testing.T) {
	sim := Default().Sim
	prev := -1.0
	for floor := 0; floor < 20; floor++ {
		d := sim.DifficultyFor(floor)
		if d < prev {
			t.Fatalf("difficulty dropped at floor %d: %v < %v", floor, d, prev)
		}
		prev = d
	}
	if sim.DifficultyFor(-3) != sim.DifficultyFor(0) {
		t.Error("negative floors should clamp to floor zero")
	}
}
