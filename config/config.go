// Package config loads engine configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the tunable game parameters and infrastructure settings.
type Config struct {
	// BaselineTrust is the initial trust and spread value for every platform.
	BaselineTrust int `env:"SUSTAINET_BASELINE_TRUST" envDefault:"50"`
	// MaxRounds limits how many AI-then-player cycles a game runs.
	MaxRounds int `env:"SUSTAINET_MAX_ROUNDS" envDefault:"5"`
	// TrustWinThreshold ends the game when any platform trust reaches it.
	TrustWinThreshold int `env:"SUSTAINET_TRUST_WIN_THRESHOLD" envDefault:"90"`
	// TrustLossThreshold ends the game when any platform trust drops to it.
	TrustLossThreshold int `env:"SUSTAINET_TRUST_LOSS_THRESHOLD" envDefault:"10"`

	// StoragePath is the SQLite database file. Empty selects the in-memory store.
	StoragePath string `env:"SUSTAINET_STORAGE_PATH"`

	// DefaultProvider selects the model backend for agents without an explicit one.
	DefaultProvider string `env:"SUSTAINET_DEFAULT_PROVIDER" envDefault:"openai"`

	LogLevel  string `env:"SUSTAINET_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"SUSTAINET_LOG_FORMAT" envDefault:"json"`
}

// Default returns the configuration used when no environment is consulted.
func Default() Config {
	return Config{
		BaselineTrust:      50,
		MaxRounds:          5,
		TrustWinThreshold:  90,
		TrustLossThreshold: 10,
		DefaultProvider:    "openai",
		LogLevel:           "info",
		LogFormat:          "json",
	}
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks the parameter ranges the game invariants depend on.
func (c Config) Validate() error {
	if c.BaselineTrust < 0 || c.BaselineTrust > 100 {
		return fmt.Errorf("baseline trust %d outside [0,100]", c.BaselineTrust)
	}
	if c.MaxRounds < 1 {
		return fmt.Errorf("max rounds must be at least 1, got %d", c.MaxRounds)
	}
	if c.TrustWinThreshold < 0 || c.TrustWinThreshold > 100 {
		return fmt.Errorf("win threshold %d outside [0,100]", c.TrustWinThreshold)
	}
	if c.TrustLossThreshold < 0 || c.TrustLossThreshold > 100 {
		return fmt.Errorf("loss threshold %d outside [0,100]", c.TrustLossThreshold)
	}
	if c.TrustLossThreshold >= c.TrustWinThreshold {
		return fmt.Errorf("loss threshold %d must be below win threshold %d", c.TrustLossThreshold, c.TrustWinThreshold)
	}
	return nil
}
