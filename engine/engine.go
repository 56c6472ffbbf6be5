package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/hina-lin/sustainet-inc/agent"
	"github.com/hina-lin/sustainet-inc/config"
	"github.com/hina-lin/sustainet-inc/game"
	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
	"github.com/hina-lin/sustainet-inc/internal/util"
	"github.com/hina-lin/sustainet-inc/logging"
	"github.com/hina-lin/sustainet-inc/storage"
	"github.com/hina-lin/sustainet-inc/tool"
	"github.com/hina-lin/sustainet-inc/turn"
)

// Options configures an Engine instance using the functional options pattern.
type Options struct {
	// Config supplies the game parameters; defaults to config.Default().
	Config config.Config

	// Initializer overrides game creation; defaults to the standard
	// initializer seeded with Config.BaselineTrust.
	Initializer *game.Initializer

	// Polisher enables the PolishArticle operation when set.
	Polisher agent.Polisher

	// Logger receives engine lifecycle logs; defaults to a no-op.
	Logger *logging.GameLogger
}

// WithConfig sets the game parameters.
func WithConfig(cfg config.Config) func(o *Options) {
	return func(o *Options) { o.Config = cfg }
}

// WithPolisher enables the polish collaborator.
func WithPolisher(p agent.Polisher) func(o *Options) {
	return func(o *Options) { o.Polisher = p }
}

// WithLogger sets the engine logger.
func WithLogger(l *logging.GameLogger) func(o *Options) {
	return func(o *Options) { o.Logger = l }
}

// Engine is the unit of work over one storage gateway. All operations are
// safe to retry: persistence uses idempotent upserts keyed by session, round
// and actor.
type Engine struct {
	store       storage.Gateway
	executor    *turn.Executor
	gameMaster  *turn.GameMaster
	applicator  *tool.Applicator
	initializer *game.Initializer
	polisher    agent.Polisher
	endLogic    *GameEndLogic
	convert     ResponseConverter
	logger      *logging.GameLogger
	cfg         config.Config
}

// New constructs an Engine. The store, executor, game master and catalog are
// required; everything else defaults.
func New(store storage.Gateway, executor *turn.Executor, gameMaster *turn.GameMaster, catalog tool.Catalog, optFns ...func(o *Options)) (*Engine, error) {
	opts := Options{Config: config.Default()}
	for _, fn := range optFns {
		fn(&opts)
	}

	if store == nil {
		return nil, apperrors.New(apperrors.CodeStorageNotConfigured, "engine requires a storage gateway")
	}
	if executor == nil || gameMaster == nil || catalog == nil {
		return nil, apperrors.New(apperrors.CodeInvalidRequest, "engine requires an executor, game master and tool catalog")
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("engine config: %w", err)
	}

	initializer := opts.Initializer
	if initializer == nil {
		var err error
		initializer, err = game.NewInitializer(func(o *game.InitializerOptions) {
			o.Baseline = opts.Config.BaselineTrust
		})
		if err != nil {
			return nil, err
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelError, Format: "json", Output: io.Discard})
	}

	return &Engine{
		store:       store,
		executor:    executor,
		gameMaster:  gameMaster,
		applicator:  tool.NewApplicator(catalog),
		initializer: initializer,
		polisher:    opts.Polisher,
		endLogic:    NewGameEndLogic(opts.Config.MaxRounds, opts.Config.TrustWinThreshold, opts.Config.TrustLossThreshold),
		logger:      logger.WithComponent("engine"),
		cfg:         opts.Config,
	}, nil
}

// StartGame initializes a fresh session, persists its setup and baseline
// state, runs and evaluates the AI's first turn and returns the session id
// with the full platform status list.
func (e *Engine) StartGame(ctx context.Context) (*StartGameResponse, error) {
	g := e.initializer.NewGame()
	log := e.logger.WithSession(g.SessionID, g.CurrentRound)
	defer log.StartTimer("start_game")()

	now := time.Now().UTC()
	setup := make([]storage.Setup, len(g.Platforms))
	states := make([]storage.PlatformState, len(g.Platforms))
	for i, p := range g.Platforms {
		setup[i] = storage.Setup{
			SessionID: g.SessionID,
			Platform:  p.Name,
			Audience:  p.Audience,
			Position:  i,
			CreatedAt: now,
		}
		states[i] = storage.PlatformState{
			SessionID:    g.SessionID,
			RoundNumber:  g.CurrentRound,
			PlatformName: p.Name,
			PlayerTrust:  p.PlayerTrust.Int(),
			AITrust:      p.AITrust.Int(),
			SpreadRate:   p.SpreadRate.Int(),
			UpdatedAt:    now,
		}
	}
	if err := e.store.CreateSetup(ctx, setup); err != nil {
		return nil, fmt.Errorf("persist setup: %w", err)
	}
	if err := e.store.CreateStates(ctx, states); err != nil {
		return nil, fmt.Errorf("persist initial states: %w", err)
	}

	aiSummary, err := e.playAITurn(ctx, g)
	if err != nil {
		return nil, err
	}

	return &StartGameResponse{
		SessionID:    g.SessionID,
		CurrentRound: g.CurrentRound,
		Platforms:    e.convert.PlatformList(g),
		AITurn:       aiSummary,
		End:          e.endLogic.Check(g, 0),
	}, nil
}

// SubmitPlayerTurn runs the player's turn for the current round, completes
// the round and, when the game continues, advances to the next round and
// runs the AI's turn in the same call.
func (e *Engine) SubmitPlayerTurn(ctx context.Context, sessionID string, article game.Article, toolNames []string) (*TurnResponse, error) {
	g, err := e.LoadGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	log := e.logger.WithSession(sessionID, g.CurrentRound)

	round, err := e.store.CurrentRound(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load current round: %w", err)
	}
	completed := round.RoundNumber - 1
	if round.Completed {
		completed = round.RoundNumber
	}
	if end := e.endLogic.Check(g, completed); end.Ended {
		return nil, apperrors.New(apperrors.CodeGameAlreadyEnded, end.Summary)
	}

	if round.Completed {
		// The round finished but its successor was never created, which
		// happens when the follow-up AI turn failed after the round was
		// marked complete. Advance and play the missing AI turn instead of
		// rejecting, so a transient collaborator failure cannot wedge the
		// session.
		log.Warn("completed round has no successor, advancing", "round_number", round.RoundNumber)
		g.AdvanceRound()
		if _, err := e.playAITurn(ctx, g); err != nil {
			return nil, err
		}
		if end := e.endLogic.Check(g, round.RoundNumber); end.Ended {
			return nil, apperrors.New(apperrors.CodeGameAlreadyEnded, end.Summary)
		}
		round = storage.Round{SessionID: sessionID, RoundNumber: g.CurrentRound}
	}

	actions, err := e.store.ActionsForRound(ctx, sessionID, round.RoundNumber)
	if err != nil {
		return nil, fmt.Errorf("load round actions: %w", err)
	}
	var aiActed, playerActed bool
	for _, a := range actions {
		switch a.Actor {
		case game.ActorAI:
			aiActed = true
		case game.ActorPlayer:
			playerActed = true
		}
	}
	if !aiActed {
		return nil, apperrors.New(apperrors.CodeInvalidTurnOrder, "the AI has not acted this round yet")
	}
	if playerActed {
		return nil, apperrors.New(apperrors.CodeInvalidTurnOrder,
			fmt.Sprintf("the player already acted in round %d", round.RoundNumber))
	}

	playerSummary, err := e.playPlayerTurn(ctx, g, article, toolNames)
	if err != nil {
		return nil, err
	}
	if err := e.store.CompleteRound(ctx, sessionID, round.RoundNumber); err != nil {
		return nil, fmt.Errorf("complete round: %w", err)
	}

	resp := &TurnResponse{
		SessionID:   sessionID,
		RoundNumber: round.RoundNumber,
		PlayerTurn:  playerSummary,
	}

	end := e.endLogic.Check(g, round.RoundNumber)
	if !end.Ended {
		g.AdvanceRound()
		aiSummary, err := e.playAITurn(ctx, g)
		if err != nil {
			return nil, err
		}
		resp.NextAITurn = aiSummary
		end = e.endLogic.Check(g, round.RoundNumber)
	}

	resp.CurrentRound = g.CurrentRound
	resp.Platforms = e.convert.PlatformList(g)
	resp.End = end
	if end.Ended {
		log.Info("game ended", "winner", string(end.Winner), "reason", end.Reason)
	}
	return resp, nil
}

// PolishArticle rewrites a player draft with the polish collaborator and
// records the invocation.
func (e *Engine) PolishArticle(ctx context.Context, sessionID, content, requirements string) (string, error) {
	if e.polisher == nil {
		return "", apperrors.New(apperrors.CodeAgentNotConfigured, "no polish collaborator configured")
	}
	round, err := e.store.CurrentRound(ctx, sessionID)
	if err != nil {
		return "", fmt.Errorf("load current round: %w", err)
	}

	polished, err := e.polisher.Polish(ctx, agent.PolishInput{Content: content, Requirements: requirements})
	if err != nil {
		return "", fmt.Errorf("polish article: %w", err)
	}

	if err := e.store.RecordPolish(ctx, storage.PolishRecord{
		ID:           util.NewID(),
		SessionID:    sessionID,
		RoundNumber:  round.RoundNumber,
		Original:     content,
		Polished:     polished,
		Requirements: requirements,
		CreatedAt:    time.Now().UTC(),
	}); err != nil {
		return "", fmt.Errorf("record polish: %w", err)
	}
	return polished, nil
}

// playAITurn executes, evaluates and persists one AI turn, creating the
// round record for the aggregate's current round.
func (e *Engine) playAITurn(ctx context.Context, g *game.Game) (*ActionSummary, error) {
	log := e.logger.WithSession(g.SessionID, g.CurrentRound)
	start := time.Now()

	res, err := e.executor.ExecuteTurn(ctx, g, game.ActorAI, nil, nil)
	if err != nil {
		log.LogTurn(string(game.ActorAI), "", time.Since(start), false, err)
		return nil, err
	}
	if err := e.store.CreateRound(ctx, storage.Round{
		SessionID:   g.SessionID,
		RoundNumber: g.CurrentRound,
		NewsID:      res.NewsID,
		CreatedAt:   time.Now().UTC(),
	}); err != nil {
		return nil, fmt.Errorf("persist round: %w", err)
	}

	summary, err := e.evaluateAndPersist(ctx, g, res)
	log.LogTurn(string(game.ActorAI), res.PlatformName, time.Since(start), err == nil, err)
	return summary, err
}

// playPlayerTurn executes, evaluates and persists one player turn.
func (e *Engine) playPlayerTurn(ctx context.Context, g *game.Game, article game.Article, toolNames []string) (*ActionSummary, error) {
	log := e.logger.WithSession(g.SessionID, g.CurrentRound)
	start := time.Now()

	res, err := e.executor.ExecuteTurn(ctx, g, game.ActorPlayer, &article, toolNames)
	if err != nil {
		log.LogTurn(string(game.ActorPlayer), article.TargetPlatform, time.Since(start), false, err)
		return nil, err
	}

	summary, err := e.evaluateAndPersist(ctx, g, res)
	log.LogTurn(string(game.ActorPlayer), res.PlatformName, time.Since(start), err == nil, err)
	return summary, err
}

// evaluateAndPersist runs the game master, applies tool effects, mutates the
// aggregate and writes state, action and usage rows.
func (e *Engine) evaluateAndPersist(ctx context.Context, g *game.Game, res *turn.Result) (*ActionSummary, error) {
	eval := e.gameMaster.Evaluate(ctx, g, res.Article, res.Actor)

	used, err := e.usedTools(ctx, g.SessionID)
	if err != nil {
		return nil, err
	}
	adj := e.applicator.Apply(eval.TrustChange, eval.SpreadChange, res.Actor, res.RequestedTools, used)

	platform, _ := g.PlatformByName(res.PlatformName)
	if platform == nil {
		return nil, apperrors.New(apperrors.CodePlatformConfigInvalid,
			fmt.Sprintf("resolved platform %s is not part of the game", res.PlatformName))
	}
	if res.Actor == game.ActorAI {
		platform.AITrust = platform.AITrust.Apply(adj.TrustChange)
	} else {
		platform.PlayerTrust = platform.PlayerTrust.Apply(adj.TrustChange)
	}
	platform.SpreadRate = platform.SpreadRate.Apply(adj.SpreadChange)

	if err := e.persistTurn(ctx, g, res, eval, adj); err != nil {
		return nil, err
	}
	return e.convert.Action(res, eval, adj.TrustChange, adj.SpreadChange), nil
}

// persistTurn writes the post-turn platform states, the action record and
// the effective tool usages.
func (e *Engine) persistTurn(ctx context.Context, g *game.Game, res *turn.Result, eval *agent.Evaluation, adj tool.Adjustment) error {
	now := time.Now().UTC()
	for _, p := range g.Platforms {
		if err := e.store.UpsertState(ctx, storage.PlatformState{
			SessionID:    g.SessionID,
			RoundNumber:  g.CurrentRound,
			PlatformName: p.Name,
			PlayerTrust:  p.PlayerTrust.Int(),
			AITrust:      p.AITrust.Int(),
			SpreadRate:   p.SpreadRate.Int(),
			UpdatedAt:    now,
		}); err != nil {
			return fmt.Errorf("persist platform state: %w", err)
		}
	}

	comments := res.Comments
	if len(comments) == 0 {
		comments = eval.SimulatedComments
	}
	if err := e.store.CreateAction(ctx, storage.Action{
		ID:                util.NewID(),
		SessionID:         g.SessionID,
		RoundNumber:       g.CurrentRound,
		Actor:             res.Actor,
		Platform:          res.PlatformName,
		Title:             res.Article.Title,
		Content:           res.Article.Content,
		PolishedContent:   res.Article.PolishedContent,
		TrustChange:       adj.TrustChange,
		SpreadChange:      adj.SpreadChange,
		ReachCount:        eval.ReachCount,
		Effectiveness:     string(eval.Effectiveness),
		SimulatedComments: comments,
		CreatedAt:         now,
	}); err != nil {
		return fmt.Errorf("persist action: %w", err)
	}

	for _, app := range adj.Effective() {
		if err := e.store.RecordToolUsage(ctx, storage.ToolUsage{
			SessionID:    g.SessionID,
			Tool:         app.Tool,
			User:         app.User,
			RoundNumber:  g.CurrentRound,
			TrustEffect:  app.TrustEffect,
			SpreadEffect: app.SpreadEffect,
			CreatedAt:    now,
		}); err != nil {
			return fmt.Errorf("persist tool usage: %w", err)
		}
	}
	return nil
}

// usedTools loads the session's effective (tool, user) history.
func (e *Engine) usedTools(ctx context.Context, sessionID string) (map[tool.UsageKey]bool, error) {
	rows, err := e.store.ToolUsages(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load tool usages: %w", err)
	}
	used := make(map[tool.UsageKey]bool, len(rows))
	for _, row := range rows {
		used[tool.UsageKey{Tool: row.Tool, User: row.User}] = true
	}
	return used, nil
}
