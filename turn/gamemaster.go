package turn

import (
	"context"
	"fmt"

	"github.com/hina-lin/sustainet-inc/agent"
	"github.com/hina-lin/sustainet-inc/game"
	"github.com/hina-lin/sustainet-inc/logging"
)

// GameMasterOptions configure a GameMaster.
type GameMasterOptions struct {
	Logger logging.Logger
}

// GameMaster wraps the evaluation collaborator. Scoring policy lives entirely
// in the collaborator; the GameMaster validates the shape of its verdict and
// substitutes a conservative zero-delta evaluation when the verdict is
// missing or malformed. Evaluate never returns an error.
type GameMaster struct {
	evaluator agent.Evaluator
	logger    logging.Logger
}

// NewGameMaster constructs a GameMaster over the given evaluator.
func NewGameMaster(evaluator agent.Evaluator, optFns ...func(o *GameMasterOptions)) *GameMaster {
	opts := GameMasterOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &GameMaster{evaluator: evaluator, logger: opts.Logger}
}

// Evaluate scores one actor's published article against the full roster. The
// roster is passed in configured platform order so repeated evaluations of
// the same state see an identical context. The polished content, when
// present, is what gets scored.
func (gm *GameMaster) Evaluate(ctx context.Context, g *game.Game, article game.Article, actor game.Actor) *agent.Evaluation {
	input := agent.EvaluationInput{
		Article:        article,
		TargetPlatform: article.TargetPlatform,
		Roster:         agent.PlatformOptions(g.Platforms),
		Round:          g.CurrentRound,
		Actor:          actor,
	}

	eval, err := gm.evaluator.Evaluate(ctx, input)
	if err != nil {
		gm.logger.Warn("evaluation failed, using zero-delta fallback",
			"error", err, "session_id", g.SessionID, "actor", string(actor))
		return gm.fallback(g)
	}
	if err := gm.validate(g, eval); err != nil {
		gm.logger.Warn("evaluation rejected, using zero-delta fallback",
			"error", err, "session_id", g.SessionID, "actor", string(actor))
		return gm.fallback(g)
	}

	eval.Effectiveness = agent.NormalizeEffectiveness(string(eval.Effectiveness))
	return eval
}

// validate requires exactly one status entry per known platform, each with
// pre-clamp values inside [0,100].
func (gm *GameMaster) validate(g *game.Game, eval *agent.Evaluation) error {
	if eval == nil {
		return fmt.Errorf("nil evaluation")
	}
	if len(eval.PlatformStatus) != len(g.Platforms) {
		return fmt.Errorf("platform status has %d entries, want %d", len(eval.PlatformStatus), len(g.Platforms))
	}
	seen := make(map[string]bool, len(eval.PlatformStatus))
	for _, snap := range eval.PlatformStatus {
		if _, ok := g.PlatformByName(snap.PlatformName); !ok {
			return fmt.Errorf("platform status names unknown platform %q", snap.PlatformName)
		}
		if seen[snap.PlatformName] {
			return fmt.Errorf("platform status repeats platform %q", snap.PlatformName)
		}
		seen[snap.PlatformName] = true
		for metric, value := range map[string]int{
			"player_trust": snap.PlayerTrust,
			"ai_trust":     snap.AITrust,
			"spread":       snap.Spread,
		} {
			if value < 0 || value > 100 {
				return fmt.Errorf("platform %q %s %d outside [0,100]", snap.PlatformName, metric, value)
			}
		}
	}
	return nil
}

// fallback builds a zero-delta evaluation mirroring the current state.
func (gm *GameMaster) fallback(g *game.Game) *agent.Evaluation {
	status := make([]agent.PlatformSnapshot, len(g.Platforms))
	for i, p := range g.Platforms {
		status[i] = agent.PlatformSnapshot{
			PlatformName: p.Name,
			PlayerTrust:  p.PlayerTrust.Int(),
			AITrust:      p.AITrust.Int(),
			Spread:       p.SpreadRate.Int(),
		}
	}
	return &agent.Evaluation{
		Effectiveness:  agent.EffectivenessMedium,
		CrowdReaction:  "The crowd barely reacts.",
		PlatformStatus: status,
	}
}
