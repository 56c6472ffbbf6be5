package turn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hina-lin/sustainet-inc/agent"
	"github.com/hina-lin/sustainet-inc/game"
	"github.com/hina-lin/sustainet-inc/internal/testutil"
)

type stubEvaluator struct {
	eval  *agent.Evaluation
	err   error
	input agent.EvaluationInput
}

func (s *stubEvaluator) Evaluate(_ context.Context, input agent.EvaluationInput) (*agent.Evaluation, error) {
	s.input = input
	return s.eval, s.err
}

func fullStatus(g *game.Game) []agent.PlatformSnapshot {
	status := make([]agent.PlatformSnapshot, len(g.Platforms))
	for i, p := range g.Platforms {
		status[i] = agent.PlatformSnapshot{
			PlatformName: p.Name,
			PlayerTrust:  p.PlayerTrust.Int(),
			AITrust:      p.AITrust.Int(),
			Spread:       p.SpreadRate.Int(),
		}
	}
	return status
}

func TestGameMaster_Evaluate(t *testing.T) {
	g := testutil.NewGameBuilder("game-1").Round(2).DefaultPlatforms().Build()
	ev := &stubEvaluator{eval: &agent.Evaluation{
		TrustChange:    8,
		SpreadChange:   -3,
		ReachCount:     1200,
		Effectiveness:  agent.Effectiveness("HIGH"),
		PlatformStatus: fullStatus(g),
	}}
	gm := NewGameMaster(ev)

	article := testutil.NewArticleBuilder("t", "raw", game.ActorPlayer).
		Platform("Facebook").Polished("polished").Build()
	eval := gm.Evaluate(context.Background(), g, article, game.ActorPlayer)

	assert.Equal(t, 8, eval.TrustChange)
	assert.Equal(t, -3, eval.SpreadChange)
	assert.Equal(t, agent.EffectivenessHigh, eval.Effectiveness)

	// The full roster travels with the article and the round is audit-only.
	assert.Len(t, ev.input.Roster, 3)
	assert.Equal(t, 2, ev.input.Round)
	assert.Equal(t, "polished", ev.input.Article.EvaluationContent())
}

func TestGameMaster_EvaluatorError_FallsBackToZeroDelta(t *testing.T) {
	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	gm := NewGameMaster(&stubEvaluator{err: errors.New("timeout")})

	eval := gm.Evaluate(context.Background(), g, game.Article{Title: "t", Content: "c"}, game.ActorAI)

	assert.Zero(t, eval.TrustChange)
	assert.Zero(t, eval.SpreadChange)
	assert.Equal(t, agent.EffectivenessMedium, eval.Effectiveness)
	// The fallback mirrors the current state per platform.
	require.Len(t, eval.PlatformStatus, 3)
	assert.Equal(t, 50, eval.PlatformStatus[0].PlayerTrust)
}

func TestGameMaster_MissingPlatform_FallsBack(t *testing.T) {
	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	status := fullStatus(g)[:2] // one platform omitted
	gm := NewGameMaster(&stubEvaluator{eval: &agent.Evaluation{
		TrustChange: 10, SpreadChange: 10, PlatformStatus: status,
	}})

	eval := gm.Evaluate(context.Background(), g, game.Article{}, game.ActorAI)
	assert.Zero(t, eval.TrustChange)
	assert.Len(t, eval.PlatformStatus, 3)
}

func TestGameMaster_UnknownPlatform_FallsBack(t *testing.T) {
	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	status := fullStatus(g)
	status[1].PlatformName = "MySpace"
	gm := NewGameMaster(&stubEvaluator{eval: &agent.Evaluation{
		TrustChange: 10, SpreadChange: 10, PlatformStatus: status,
	}})

	eval := gm.Evaluate(context.Background(), g, game.Article{}, game.ActorAI)
	assert.Zero(t, eval.TrustChange)
}

func TestGameMaster_DuplicatePlatform_FallsBack(t *testing.T) {
	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	status := fullStatus(g)
	status[1].PlatformName = status[0].PlatformName
	gm := NewGameMaster(&stubEvaluator{eval: &agent.Evaluation{
		TrustChange: 10, SpreadChange: 10, PlatformStatus: status,
	}})

	eval := gm.Evaluate(context.Background(), g, game.Article{}, game.ActorAI)
	assert.Zero(t, eval.TrustChange)
}

func TestGameMaster_OutOfRangeValue_FallsBack(t *testing.T) {
	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	status := fullStatus(g)
	status[2].AITrust = 130 // pre-clamp values must already be in range
	gm := NewGameMaster(&stubEvaluator{eval: &agent.Evaluation{
		TrustChange: 10, SpreadChange: 10, PlatformStatus: status,
	}})

	eval := gm.Evaluate(context.Background(), g, game.Article{}, game.ActorAI)
	assert.Zero(t, eval.TrustChange)
}
