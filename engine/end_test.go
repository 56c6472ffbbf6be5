package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hina-lin/sustainet-inc/game"
	"github.com/hina-lin/sustainet-inc/internal/testutil"
)

func TestGameEndLogic_ContinuesMidGame(t *testing.T) {
	l := NewGameEndLogic(5, 90, 10)
	g := testutil.NewGameBuilder("game-1").Round(3).DefaultPlatforms().Build()

	out := l.Check(g, 2)
	assert.False(t, out.Ended)
	assert.Empty(t, out.Winner)
}

func TestGameEndLogic_RoundLimit(t *testing.T) {
	l := NewGameEndLogic(5, 90, 10)
	g := testutil.NewGameBuilder("game-1").Round(5).
		Platform("Facebook", "young", 60, 40, 50).
		Platform("Instagram", "elderly", 55, 45, 50).
		Build()

	out := l.Check(g, 5)
	assert.True(t, out.Ended)
	assert.Equal(t, game.WinnerPlayer, out.Winner)
	assert.Contains(t, out.Summary, "Game over")
}

func TestGameEndLogic_WinThreshold(t *testing.T) {
	l := NewGameEndLogic(5, 90, 10)
	g := testutil.NewGameBuilder("game-1").Round(2).
		Platform("Facebook", "young", 30, 92, 50).
		Platform("Instagram", "elderly", 50, 50, 50).
		Build()

	out := l.Check(g, 1)
	assert.True(t, out.Ended)
	assert.Equal(t, game.WinnerAI, out.Winner)
	assert.Contains(t, out.Reason, "Facebook")
}

func TestGameEndLogic_LossThreshold(t *testing.T) {
	l := NewGameEndLogic(5, 90, 10)
	g := testutil.NewGameBuilder("game-1").Round(2).
		Platform("Facebook", "young", 8, 60, 50).
		Platform("Instagram", "elderly", 50, 50, 50).
		Build()

	out := l.Check(g, 1)
	assert.True(t, out.Ended)
	// The actor with strictly higher summed trust wins regardless of which
	// threshold tripped.
	assert.Equal(t, game.WinnerAI, out.Winner)
}

func TestGameEndLogic_Draw(t *testing.T) {
	l := NewGameEndLogic(3, 90, 10)
	g := testutil.NewGameBuilder("game-1").Round(3).DefaultPlatforms().Build()

	out := l.Check(g, 3)
	assert.True(t, out.Ended)
	assert.Equal(t, game.WinnerDraw, out.Winner)
	assert.Contains(t, out.Summary, "draw")
}
