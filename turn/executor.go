package turn

import (
	"context"
	"fmt"
	"time"

	"github.com/hina-lin/sustainet-inc/agent"
	"github.com/hina-lin/sustainet-inc/game"
	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
	"github.com/hina-lin/sustainet-inc/logging"
	"github.com/hina-lin/sustainet-inc/storage"
	"github.com/hina-lin/sustainet-inc/tool"
)

// NewsSource supplies reference news items for AI turns.
type NewsSource interface {
	RandomActiveNews(ctx context.Context) (storage.News, error)
}

// HistorySource supplies prior evaluated actions for AI turns.
type HistorySource interface {
	ActionsForRound(ctx context.Context, sessionID string, roundNumber int) ([]storage.Action, error)
	PlayerActionsBefore(ctx context.Context, sessionID string, roundNumber int) ([]storage.Action, error)
}

// ExecutorOptions configure an Executor.
type ExecutorOptions struct {
	// Comments simulates crowd reactions; nil disables simulation.
	Comments agent.CommentSimulator
	Logger   logging.Logger
}

// Executor runs one actor's turn against the in-memory aggregate. It performs
// no persistence and no evaluation.
type Executor struct {
	generator agent.ContentGenerator
	comments  agent.CommentSimulator
	catalog   tool.Catalog
	news      NewsSource
	history   HistorySource
	logger    logging.Logger
}

// NewExecutor constructs an Executor. The generator, catalog, news and
// history sources are required for AI turns.
func NewExecutor(generator agent.ContentGenerator, catalog tool.Catalog, news NewsSource, history HistorySource, optFns ...func(o *ExecutorOptions)) *Executor {
	opts := ExecutorOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Executor{
		generator: generator,
		comments:  opts.Comments,
		catalog:   catalog,
		news:      news,
		history:   history,
		logger:    opts.Logger,
	}
}

// ExecuteTurn runs one turn. For the AI actor the article argument must be
// nil and the content generator produces it; for the player the article is
// required. toolNames are the player's requested tools; the AI's come from
// the generation itself.
func (e *Executor) ExecuteTurn(ctx context.Context, g *game.Game, actor game.Actor, article *game.Article, toolNames []string) (*Result, error) {
	if !actor.Valid() {
		return nil, apperrors.New(apperrors.CodeInvalidActor, fmt.Sprintf("actor %q is not valid", actor))
	}

	var (
		published game.Article
		requested []string
		newsID    int64
		err       error
	)
	switch actor {
	case game.ActorAI:
		published, requested, newsID, err = e.aiArticle(ctx, g)
		if err != nil {
			return nil, err
		}
	case game.ActorPlayer:
		if article == nil {
			return nil, apperrors.New(apperrors.CodeArticleRequired, "player turn requires an article")
		}
		published = *article
		published.Author = game.ActorPlayer
		requested = toolNames
	}
	if published.PublishedAt.IsZero() {
		published.PublishedAt = time.Now().UTC()
	}

	platform, matched := g.ResolvePlatform(published.TargetPlatform)
	if platform == nil {
		return nil, apperrors.New(apperrors.CodePlatformConfigInvalid, "game has no platforms configured")
	}
	if !matched {
		e.logger.Warn("target platform unknown, falling back to first configured",
			"requested_platform", published.TargetPlatform,
			"fallback_platform", platform.Name,
			"session_id", g.SessionID)
	}
	published.TargetPlatform = platform.Name

	res := &Result{
		Actor:            actor,
		Article:          published,
		PlatformName:     platform.Name,
		PlatformFallback: !matched,
		RequestedTools:   requested,
		NewsID:           newsID,
	}
	res.Comments = e.simulateComments(ctx, g, res)
	return res, nil
}

// aiArticle assembles the generation variables and asks the content generator
// for this round's article. The generator picks the target platform.
func (e *Executor) aiArticle(ctx context.Context, g *game.Game) (game.Article, []string, int64, error) {
	vars := agent.GenerationVariables{
		AllPlatforms: agent.PlatformOptions(g.Platforms),
		CurrentRound: g.CurrentRound,
	}

	first, err := e.news.RandomActiveNews(ctx)
	if err != nil {
		return game.Article{}, nil, 0, fmt.Errorf("draw reference news: %w", err)
	}
	vars.News1 = first.Content
	vars.News1Veracity = first.Veracity
	if second, err := e.news.RandomActiveNews(ctx); err == nil && second.ID != first.ID {
		vars.News2 = second.Content
		vars.News2Veracity = second.Veracity
	}

	vars.PlayerResponses = e.playerResponses(ctx, g)
	vars.PrevFeedback = e.previousFeedback(ctx, g)

	for _, t := range tool.UnlockedForActor(e.catalog, game.ActorAI, g.CurrentRound) {
		vars.AvailableTools = append(vars.AvailableTools, agent.ToolOption{
			Name:         t.Name,
			Description:  t.Description,
			TrustEffect:  t.TrustEffect,
			SpreadEffect: t.SpreadEffect,
		})
	}

	gen, err := e.generator.Generate(ctx, vars)
	if err != nil {
		return game.Article{}, nil, 0, fmt.Errorf("ai turn generation: %w", err)
	}

	article := game.Article{
		Title:          gen.Title,
		Content:        gen.Content,
		ImageURL:       gen.ImageURL,
		Source:         gen.Source,
		Author:         game.ActorAI,
		TargetPlatform: gen.TargetPlatform,
		Veracity:       gen.Veracity,
		PublishedAt:    time.Now().UTC(),
	}
	return article, gen.ToolsUsed, first.ID, nil
}

// playerResponses summarizes the player's evaluated actions from earlier
// rounds, oldest first. History failures degrade to an empty list.
func (e *Executor) playerResponses(ctx context.Context, g *game.Game) []agent.PlayerResponse {
	actions, err := e.history.PlayerActionsBefore(ctx, g.SessionID, g.CurrentRound)
	if err != nil {
		e.logger.Warn("player history unavailable", "error", err, "session_id", g.SessionID)
		return nil
	}
	res := make([]agent.PlayerResponse, 0, len(actions))
	for _, a := range actions {
		res = append(res, agent.PlayerResponse{
			Round:         a.RoundNumber,
			Platform:      a.Platform,
			Title:         a.Title,
			Content:       a.Content,
			Effectiveness: a.Effectiveness,
			TrustChange:   a.TrustChange,
			SpreadChange:  a.SpreadChange,
			ReachCount:    a.ReachCount,
			Comments:      a.SimulatedComments,
		})
	}
	return res
}

// previousFeedback returns the crowd reaction to the AI's previous turn, nil
// on round one or when the record is unavailable.
func (e *Executor) previousFeedback(ctx context.Context, g *game.Game) *agent.RoundFeedback {
	if g.CurrentRound <= 1 {
		return nil
	}
	prev := g.CurrentRound - 1
	actions, err := e.history.ActionsForRound(ctx, g.SessionID, prev)
	if err != nil {
		e.logger.Warn("previous round history unavailable", "error", err, "session_id", g.SessionID)
		return nil
	}
	for _, a := range actions {
		if a.Actor != game.ActorAI {
			continue
		}
		return &agent.RoundFeedback{
			Round:         a.RoundNumber,
			Effectiveness: a.Effectiveness,
			TrustChange:   a.TrustChange,
			SpreadChange:  a.SpreadChange,
			ReachCount:    a.ReachCount,
			Comments:      a.SimulatedComments,
		}
	}
	return nil
}

// simulateComments asks the crowd simulator for reactions. Any failure
// degrades to an empty list.
func (e *Executor) simulateComments(ctx context.Context, g *game.Game, res *Result) []string {
	if e.comments == nil {
		return nil
	}
	platform, _ := g.PlatformByName(res.PlatformName)
	audience := ""
	if platform != nil {
		audience = platform.Audience
	}
	comments, err := e.comments.Simulate(ctx, agent.CommentInput{
		Title:    res.Article.Title,
		Content:  res.Article.EvaluationContent(),
		Platform: res.PlatformName,
		Audience: audience,
		Actor:    res.Actor,
		Round:    g.CurrentRound,
	})
	if err != nil {
		e.logger.Warn("comment simulation failed, continuing without comments",
			"error", err, "session_id", g.SessionID, "platform", res.PlatformName)
		return nil
	}
	return comments
}
