package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
)

func TestInitializer_NewGame_Defaults(t *testing.T) {
	init, err := NewInitializer()
	require.NoError(t, err)

	g := init.NewGame()

	assert.Regexp(t, `^game_[0-9a-f]{32}$`, g.SessionID)
	assert.Equal(t, 1, g.CurrentRound)
	require.Len(t, g.Platforms, 3)

	names := make([]string, 0, 3)
	audiences := make(map[string]bool)
	for _, p := range g.Platforms {
		names = append(names, p.Name)
		audiences[p.Audience] = true
		assert.Equal(t, Score(DefaultBaseline), p.PlayerTrust)
		assert.Equal(t, Score(DefaultBaseline), p.AITrust)
		assert.Equal(t, Score(DefaultBaseline), p.SpreadRate)
	}
	assert.Equal(t, DefaultPlatformNames, names)
	// Bijective assignment: every audience used exactly once.
	assert.Len(t, audiences, 3)
}

func TestInitializer_NewGame_DeterministicWithSeed(t *testing.T) {
	build := func() *Game {
		init, err := NewInitializer(func(o *InitializerOptions) {
			o.Rand = rand.New(rand.NewSource(7))
			o.NewSessionID = func() string { return "game_fixed" }
		})
		require.NoError(t, err)
		return init.NewGame()
	}

	first := build()
	second := build()
	assert.Equal(t, first, second)
}

func TestInitializer_NewGame_FreshSessionIDs(t *testing.T) {
	init, err := NewInitializer()
	require.NoError(t, err)

	assert.NotEqual(t, init.NewGame().SessionID, init.NewGame().SessionID)
}

func TestInitializer_BaselineClamped(t *testing.T) {
	init, err := NewInitializer(func(o *InitializerOptions) {
		o.Baseline = 150
	})
	require.NoError(t, err)

	g := init.NewGame()
	assert.Equal(t, Score(100), g.Platforms[0].PlayerTrust)
}

func TestNewInitializer_ArityMismatch(t *testing.T) {
	_, err := NewInitializer(func(o *InitializerOptions) {
		o.PlatformNames = []string{"Facebook", "Instagram"}
		o.Audiences = []string{"young"}
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodePlatformConfigInvalid))

	_, err = NewInitializer(func(o *InitializerOptions) {
		o.PlatformNames = nil
		o.Audiences = nil
	})
	require.Error(t, err)
}
