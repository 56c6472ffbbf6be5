// Package sustainet provides a high-level façade over the game engine and its
// collaborators. Most applications interact with this package by:
//  1. Creating a Sustainet via New() (optionally overriding the defaults)
//  2. Calling StartGame to open a session (the AI takes the first turn)
//  3. Calling SubmitPlayerTurn once per round with the player's article
//
// The façade delegates orchestration to engine.Engine while keeping setup
// ergonomics concise. Collaborators can be supplied directly or resolved from
// a persisted agent definition registry. The in-memory store default is safe
// for local development and testing; production deployments supply the SQLite
// store and a structured logger.
package sustainet

import (
	"context"

	"github.com/hina-lin/sustainet-inc/agent"
	"github.com/hina-lin/sustainet-inc/config"
	"github.com/hina-lin/sustainet-inc/engine"
	"github.com/hina-lin/sustainet-inc/game"
	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
	"github.com/hina-lin/sustainet-inc/logging"
	"github.com/hina-lin/sustainet-inc/storage"
	"github.com/hina-lin/sustainet-inc/storage/memory"
	"github.com/hina-lin/sustainet-inc/tool"
	"github.com/hina-lin/sustainet-inc/turn"
)

// DefaultCatalog returns the built-in tool set. Factors above 1.0 amplify the
// evaluated deltas; a later AvailableFromRound gates stronger tools.
func DefaultCatalog() *tool.StaticCatalog {
	return tool.NewStaticCatalog(
		tool.Tool{Name: "emotional_language", Description: "Charge the wording with strong emotion.", ApplicableTo: tool.RoleAI, TrustEffect: 1.1, SpreadEffect: 1.3, AvailableFromRound: 1},
		tool.Tool{Name: "meme_format", Description: "Repackage the message as a shareable meme.", ApplicableTo: tool.RoleAI, TrustEffect: 1.0, SpreadEffect: 1.4, AvailableFromRound: 2},
		tool.Tool{Name: "fact_check", Description: "Attach a sourced fact-check to the post.", ApplicableTo: tool.RolePlayer, TrustEffect: 1.3, SpreadEffect: 1.0, AvailableFromRound: 1},
		tool.Tool{Name: "expert_citation", Description: "Quote a named domain expert.", ApplicableTo: tool.RolePlayer, TrustEffect: 1.2, SpreadEffect: 1.1, AvailableFromRound: 2},
		tool.Tool{Name: "influencer_boost", Description: "Have an influencer amplify the post.", ApplicableTo: tool.RoleBoth, TrustEffect: 1.0, SpreadEffect: 1.2, AvailableFromRound: 3},
	)
}

// Options configures the Sustainet instance.
type Options struct {
	// Config supplies the game parameters; defaults to config.Default().
	Config config.Config

	// Store persists games; defaults to the in-memory gateway.
	Store storage.Gateway

	// Catalog is the tool set; defaults to DefaultCatalog().
	Catalog tool.Catalog

	// Collaborators. Any left nil is resolved through Registry; with no
	// Registry either, New fails for the required ones (generator,
	// evaluator).
	Generator agent.ContentGenerator
	Evaluator agent.Evaluator
	Comments  agent.CommentSimulator
	Polisher  agent.Polisher

	// Registry resolves persisted agent definitions to model backends.
	Registry *agent.Registry

	// Logger receives engine lifecycle logs; defaults to a silenced logger.
	Logger *logging.GameLogger
}

// Sustainet is the high-level façade aggregating the engine and its services.
type Sustainet struct {
	engine *engine.Engine
	store  storage.Gateway
}

// New creates a Sustainet instance with optional overrides.
func New(optFns ...func(o *Options)) (*Sustainet, error) {
	opts := Options{
		Config:  config.Default(),
		Store:   memory.New(),
		Catalog: DefaultCatalog(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Generator == nil {
		if opts.Registry == nil {
			return nil, apperrors.New(apperrors.CodeAgentNotConfigured, "no content generator configured")
		}
		opts.Generator = &registryGenerator{registry: opts.Registry}
	}
	if opts.Evaluator == nil {
		if opts.Registry == nil {
			return nil, apperrors.New(apperrors.CodeAgentNotConfigured, "no evaluator configured")
		}
		opts.Evaluator = &registryEvaluator{registry: opts.Registry}
	}
	if opts.Comments == nil && opts.Registry != nil {
		opts.Comments = &registryCommentSimulator{registry: opts.Registry}
	}
	if opts.Polisher == nil && opts.Registry != nil {
		opts.Polisher = &registryPolisher{registry: opts.Registry}
	}

	executor := turn.NewExecutor(opts.Generator, opts.Catalog, opts.Store, opts.Store, func(o *turn.ExecutorOptions) {
		o.Comments = opts.Comments
		if opts.Logger != nil {
			o.Logger = opts.Logger.WithComponent("turn")
		}
	})
	gameMaster := turn.NewGameMaster(opts.Evaluator, func(o *turn.GameMasterOptions) {
		if opts.Logger != nil {
			o.Logger = opts.Logger.WithComponent("gamemaster")
		}
	})

	eng, err := engine.New(opts.Store, executor, gameMaster, opts.Catalog,
		engine.WithConfig(opts.Config),
		engine.WithPolisher(opts.Polisher),
		engine.WithLogger(opts.Logger),
	)
	if err != nil {
		return nil, err
	}

	return &Sustainet{engine: eng, store: opts.Store}, nil
}

// StartGame opens a session and plays the AI's first turn.
func (s *Sustainet) StartGame(ctx context.Context) (*engine.StartGameResponse, error) {
	return s.engine.StartGame(ctx)
}

// SubmitPlayerTurn plays the player's turn for the current round.
func (s *Sustainet) SubmitPlayerTurn(ctx context.Context, sessionID string, article game.Article, toolNames []string) (*engine.TurnResponse, error) {
	return s.engine.SubmitPlayerTurn(ctx, sessionID, article, toolNames)
}

// PolishArticle rewrites a player draft with the polish collaborator.
func (s *Sustainet) PolishArticle(ctx context.Context, sessionID, content, requirements string) (string, error) {
	return s.engine.PolishArticle(ctx, sessionID, content, requirements)
}

// LoadGame reconstitutes a session from persisted state.
func (s *Sustainet) LoadGame(ctx context.Context, sessionID string) (*game.Game, error) {
	return s.engine.LoadGame(ctx, sessionID)
}

// Store exposes the underlying gateway, mainly so callers can seed news and
// agent definitions.
func (s *Sustainet) Store() storage.Gateway { return s.store }

// registryGenerator resolves the generator definition per call so instruction
// and temperature updates take effect without a rebuild.
type registryGenerator struct {
	registry *agent.Registry
}

func (r *registryGenerator) Generate(ctx context.Context, vars agent.GenerationVariables) (*agent.Generation, error) {
	m, def, err := r.registry.Resolve(ctx, agent.GeneratorAgentName)
	if err != nil {
		return nil, err
	}
	return agent.NewModelGenerator(m, func(o *agent.ModelGeneratorOptions) {
		o.Instruction = def.Instruction
		o.Temperature = def.Temperature
	}).Generate(ctx, vars)
}

type registryEvaluator struct {
	registry *agent.Registry
}

func (r *registryEvaluator) Evaluate(ctx context.Context, input agent.EvaluationInput) (*agent.Evaluation, error) {
	m, def, err := r.registry.Resolve(ctx, agent.EvaluatorAgentName)
	if err != nil {
		return nil, err
	}
	return agent.NewModelEvaluator(m, func(o *agent.ModelEvaluatorOptions) {
		o.Instruction = def.Instruction
		o.Temperature = def.Temperature
	}).Evaluate(ctx, input)
}

type registryCommentSimulator struct {
	registry *agent.Registry
}

func (r *registryCommentSimulator) Simulate(ctx context.Context, input agent.CommentInput) ([]string, error) {
	m, def, err := r.registry.Resolve(ctx, agent.CommentAgentName)
	if err != nil {
		return nil, err
	}
	return agent.NewModelCommentSimulator(m, func(o *agent.ModelCommentSimulatorOptions) {
		o.Instruction = def.Instruction
		o.Temperature = def.Temperature
	}).Simulate(ctx, input)
}

type registryPolisher struct {
	registry *agent.Registry
}

func (r *registryPolisher) Polish(ctx context.Context, input agent.PolishInput) (string, error) {
	m, def, err := r.registry.Resolve(ctx, agent.PolishAgentName)
	if err != nil {
		return "", err
	}
	return agent.NewModelPolisher(m, func(o *agent.ModelPolisherOptions) {
		o.Instruction = def.Instruction
		o.Temperature = def.Temperature
	}).Polish(ctx, input)
}
