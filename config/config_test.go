package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SUSTAINET_BASELINE_TRUST", "40")
	t.Setenv("SUSTAINET_MAX_ROUNDS", "8")
	t.Setenv("SUSTAINET_STORAGE_PATH", "/tmp/game.db")
	t.Setenv("SUSTAINET_DEFAULT_PROVIDER", "anthropic")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.BaselineTrust)
	assert.Equal(t, 8, cfg.MaxRounds)
	assert.Equal(t, "/tmp/game.db", cfg.StoragePath)
	assert.Equal(t, "anthropic", cfg.DefaultProvider)
	assert.Equal(t, 90, cfg.TrustWinThreshold)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, Default().Validate())

	cfg := Default()
	cfg.BaselineTrust = 101
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MaxRounds = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.TrustLossThreshold = 90
	cfg.TrustWinThreshold = 90
	assert.Error(t, cfg.Validate())

	// Thresholds outside trust bounds make the end condition unreachable.
	cfg = Default()
	cfg.TrustWinThreshold = 101
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.TrustLossThreshold = -1
	assert.Error(t, cfg.Validate())
}
