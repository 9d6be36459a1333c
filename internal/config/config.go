package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all tunables for the simulation core and its surfaces.
type Config struct {
	Sim      SimConfig      `yaml:"sim"`
	Observer ObserverConfig `yaml:"observer"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SimConfig holds the simulation tick and difficulty settings.
type SimConfig struct {
	// TickRate is simulation steps per second.
	TickRate int `yaml:"tick_rate"`

	// SeedName is the run name floors are derived from. Empty uses the
	// built-in default.
	SeedName string `yaml:"seed_name"`

	// DifficultyBase is the difficulty of floor zero.
	DifficultyBase float64 `yaml:"difficulty_base"`

	// DifficultyPerFloor is added to the difficulty on each descent.
	DifficultyPerFloor float64 `yaml:"difficulty_per_floor"`

	// PlayerHealth is the player's starting maximum health.
	PlayerHealth float64 `yaml:"player_health"`
}

// ObserverConfig holds settings for the websocket observer endpoint.
type ObserverConfig struct {
	// ListenAddr is the host:port the observer server binds to.
	ListenAddr string `yaml:"listen_addr"`

	// AllowedOrigins lists origins allowed to connect. Empty enforces
	// same-origin; "*" allows all.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// SnapshotEvery streams one snapshot per N simulation ticks.
	SnapshotEvery int `yaml:"snapshot_every"`
}

// LoggingConfig holds structured-log output settings.
type LoggingConfig struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// Default returns a Config with playable defaults.
func Default() *Config {
	return &Config{
		Sim: SimConfig{
			TickRate:           20,
			DifficultyBase:     0,
			DifficultyPerFloor: 0.5,
			PlayerHealth:       100,
		},
		Observer: ObserverConfig{
			ListenAddr:    "127.0.0.1:7777",
			SnapshotEvery: 4,
		},
		Logging: LoggingConfig{
			Level:          "INFO",
			ConsoleEnabled: true,
			ConsoleFormat:  "text",
			FilePath:       "logs/tower.log",
			FileFormat:     "text",
			FileMaxSizeMB:  10,
			FileMaxBackups: 5,
			FileMaxAgeDays: 30,
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults when
// the file does not exist. A file that exists but fails to parse or
// validate is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the loaded values for nonsense.
func (c *Config) Validate() error {
	if c.Sim.TickRate <= 0 || c.Sim.TickRate > 240 {
		return fmt.Errorf("sim.tick_rate %d out of range (1-240)", c.Sim.TickRate)
	}
	if c.Sim.DifficultyBase < 0 {
		return fmt.Errorf("sim.difficulty_base %.2f must not be negative", c.Sim.DifficultyBase)
	}
	if c.Sim.DifficultyPerFloor < 0 {
		return fmt.Errorf("sim.difficulty_per_floor %.2f must not be negative", c.Sim.DifficultyPerFloor)
	}
	if c.Sim.PlayerHealth <= 0 {
		return fmt.Errorf("sim.player_health %.2f must be positive", c.Sim.PlayerHealth)
	}
	if c.Observer.ListenAddr == "" {
		return fmt.Errorf("observer.listen_addr must not be empty")
	}
	if c.Observer.SnapshotEvery <= 0 {
		return fmt.Errorf("observer.snapshot_every %d must be positive", c.Observer.SnapshotEvery)
	}
	return nil
}

// IsOriginAllowed checks whether an origin may open an observer connection.
// An empty allow-list enforces same-origin; "*" allows everything.
func (c *ObserverConfig) IsOriginAllowed(origin, requestHost string) bool {
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}
	for _, allowed := range c.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		// No origin header means a non-browser client.
		return true
	}
	host := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		host = origin[idx+3:]
	}
	host = strings.TrimSuffix(host, "/")
	return host == requestHost
}

// DifficultyFor returns the difficulty value of a floor index under this
// configuration's linear curve.
func (c *SimConfig) DifficultyFor(floorIndex int) float64 {
	if floorIndex < 0 {
		floorIndex = 0
	}
	return c.DifficultyBase + c.DifficultyPerFloor*float64(floorIndex)
}
