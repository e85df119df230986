// Package config loads runtime configuration from the environment.
// Every field has a default; the simulation runs with nothing set.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all runtime settings.
type Config struct {
	// Seed drives combat rolls and opponent-policy dice. 0 picks a
	// time-based seed; any other value replays identically.
	Seed int64 `env:"MARE_SEED" envDefault:"0"`

	// TickInterval is the wall-clock length of one simulated day.
	TickInterval time.Duration `env:"MARE_TICK_INTERVAL" envDefault:"1s"`

	APIPort int `env:"MARE_API_PORT" envDefault:"8080"`

	// ChroniclePath is the SQLite event log location. Empty disables the
	// on-disk chronicle; ":memory:" keeps it ephemeral.
	ChroniclePath string `env:"MARE_CHRONICLE_PATH" envDefault:"data/chronicle.db"`

	// AnthropicKey enables generated chronicle prose. Empty means
	// deterministic fallback text only.
	AnthropicKey string `env:"ANTHROPIC_API_KEY"`

	// AdminKey gates the command POST endpoints. Empty disables them.
	AdminKey string `env:"MARE_ADMIN_KEY"`

	// Opponents lists AI-controlled factions. "rome,carthage" runs a
	// spectator match.
	Opponents []string `env:"MARE_OPPONENTS" envDefault:"carthage" envSeparator:","`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
