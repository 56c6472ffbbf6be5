package turn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hina-lin/sustainet-inc/agent"
	"github.com/hina-lin/sustainet-inc/game"
	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
	"github.com/hina-lin/sustainet-inc/internal/testutil"
	"github.com/hina-lin/sustainet-inc/storage"
	"github.com/hina-lin/sustainet-inc/storage/memory"
	"github.com/hina-lin/sustainet-inc/tool"
)

type stubGenerator struct {
	gen  *agent.Generation
	err  error
	vars agent.GenerationVariables
}

func (s *stubGenerator) Generate(_ context.Context, vars agent.GenerationVariables) (*agent.Generation, error) {
	s.vars = vars
	if s.err != nil {
		return nil, s.err
	}
	return s.gen, nil
}

type stubComments struct {
	comments []string
	err      error
}

func (s *stubComments) Simulate(context.Context, agent.CommentInput) ([]string, error) {
	return s.comments, s.err
}

func executorCatalog() tool.Catalog {
	return tool.NewStaticCatalog(
		tool.Tool{Name: "emotional_language", Description: "d", ApplicableTo: tool.RoleAI, TrustEffect: 1.1, SpreadEffect: 1.3, AvailableFromRound: 1},
		tool.Tool{Name: "meme_format", Description: "d", ApplicableTo: tool.RoleAI, TrustEffect: 1.0, SpreadEffect: 1.4, AvailableFromRound: 3},
	)
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.SeedNews(context.Background(), []storage.News{
		{Title: "n1", Content: "first story", Veracity: "true", Active: true},
	}))
	return store
}

func TestExecutor_AITurn(t *testing.T) {
	store := seededStore(t)
	gen := &stubGenerator{gen: &agent.Generation{
		Title:          "Shock",
		Content:        "body",
		Veracity:       "fake",
		TargetPlatform: "Instagram",
		ToolsUsed:      []string{"emotional_language"},
	}}
	e := NewExecutor(gen, executorCatalog(), store, store, func(o *ExecutorOptions) {
		o.Comments = &stubComments{comments: []string{"wow"}}
	})

	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	res, err := e.ExecuteTurn(context.Background(), g, game.ActorAI, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, game.ActorAI, res.Actor)
	assert.Equal(t, "Instagram", res.PlatformName)
	assert.False(t, res.PlatformFallback)
	assert.Equal(t, []string{"emotional_language"}, res.RequestedTools)
	assert.Equal(t, []string{"wow"}, res.Comments)
	assert.Equal(t, game.ActorAI, res.Article.Author)
	assert.NotZero(t, res.NewsID)

	// The generator saw the roster, the reference news and only the tools
	// unlocked in round one.
	assert.Len(t, gen.vars.AllPlatforms, 3)
	assert.Equal(t, "first story", gen.vars.News1)
	assert.Equal(t, 1, gen.vars.CurrentRound)
	require.Len(t, gen.vars.AvailableTools, 1)
	assert.Equal(t, "emotional_language", gen.vars.AvailableTools[0].Name)
}

func TestExecutor_AITurn_PlatformFallback(t *testing.T) {
	store := seededStore(t)
	gen := &stubGenerator{gen: &agent.Generation{Title: "t", Content: "c", TargetPlatform: "MySpace"}}
	e := NewExecutor(gen, executorCatalog(), store, store)

	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	res, err := e.ExecuteTurn(context.Background(), g, game.ActorAI, nil, nil)
	require.NoError(t, err)

	assert.True(t, res.PlatformFallback)
	assert.Equal(t, "Facebook", res.PlatformName)
	assert.Equal(t, "Facebook", res.Article.TargetPlatform)
}

func TestExecutor_AITurn_GeneratorFailure(t *testing.T) {
	store := seededStore(t)
	gen := &stubGenerator{err: errors.New("model unavailable")}
	e := NewExecutor(gen, executorCatalog(), store, store)

	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	_, err := e.ExecuteTurn(context.Background(), g, game.ActorAI, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestExecutor_AITurn_NoNews(t *testing.T) {
	store := memory.New()
	gen := &stubGenerator{gen: &agent.Generation{Title: "t", Content: "c"}}
	e := NewExecutor(gen, executorCatalog(), store, store)

	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	_, err := e.ExecuteTurn(context.Background(), g, game.ActorAI, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNewsNotFound))
}

func TestExecutor_PlayerTurn(t *testing.T) {
	store := seededStore(t)
	e := NewExecutor(&stubGenerator{}, executorCatalog(), store, store)

	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	article := testutil.NewArticleBuilder("Debunked", "Here are the facts", game.ActorPlayer).
		Platform("Thread").Build()

	res, err := e.ExecuteTurn(context.Background(), g, game.ActorPlayer, &article, []string{"fact_check"})
	require.NoError(t, err)

	assert.Equal(t, game.ActorPlayer, res.Actor)
	assert.Equal(t, "Thread", res.PlatformName)
	assert.Equal(t, []string{"fact_check"}, res.RequestedTools)
	assert.Zero(t, res.NewsID)
	assert.False(t, res.Article.PublishedAt.IsZero())
}

func TestExecutor_PlayerTurn_ArticleRequired(t *testing.T) {
	store := seededStore(t)
	e := NewExecutor(&stubGenerator{}, executorCatalog(), store, store)

	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	_, err := e.ExecuteTurn(context.Background(), g, game.ActorPlayer, nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeArticleRequired))
}

func TestExecutor_CommentsDegradeToEmpty(t *testing.T) {
	store := seededStore(t)
	e := NewExecutor(&stubGenerator{}, executorCatalog(), store, store, func(o *ExecutorOptions) {
		o.Comments = &stubComments{err: errors.New("simulator down")}
	})

	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	article := testutil.NewArticleBuilder("t", "c", game.ActorPlayer).Platform("Facebook").Build()

	res, err := e.ExecuteTurn(context.Background(), g, game.ActorPlayer, &article, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Comments)
}

func TestExecutor_InvalidActor(t *testing.T) {
	store := seededStore(t)
	e := NewExecutor(&stubGenerator{}, executorCatalog(), store, store)

	g := testutil.NewGameBuilder("game-1").DefaultPlatforms().Build()
	_, err := e.ExecuteTurn(context.Background(), g, game.Actor("referee"), nil, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeInvalidActor))
}
