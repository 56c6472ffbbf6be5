package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hina-lin/sustainet-inc/agent"
	"github.com/hina-lin/sustainet-inc/game"
	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
	"github.com/hina-lin/sustainet-inc/storage"
	"github.com/hina-lin/sustainet-inc/tool"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "game.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open("  ")
	require.Error(t, err)
}

func TestOpen_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening reapplies nothing and succeeds.
	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestStore_SetupRoundtrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.GetSetup(ctx, "game_x")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeGameSetupNotFound))

	require.NoError(t, s.CreateSetup(ctx, []storage.Setup{
		{SessionID: "game_x", Platform: "Facebook", Audience: "young"},
		{SessionID: "game_x", Platform: "Instagram", Audience: "elderly"},
	}))

	got, err := s.GetSetup(ctx, "game_x")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Facebook", got[0].Platform)
	assert.Equal(t, "young", got[0].Audience)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestStore_SetupKeepsConfiguredOrder(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	// A non-alphabetical platform set must come back in the order it was
	// configured, not sorted by name.
	require.NoError(t, s.CreateSetup(ctx, []storage.Setup{
		{SessionID: "game_x", Platform: "Thread", Audience: "young", Position: 0},
		{SessionID: "game_x", Platform: "Instagram", Audience: "elderly", Position: 1},
		{SessionID: "game_x", Platform: "Facebook", Audience: "middle-aged", Position: 2},
	}))

	got, err := s.GetSetup(ctx, "game_x")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Thread", got[0].Platform)
	assert.Equal(t, "Instagram", got[1].Platform)
	assert.Equal(t, "Facebook", got[2].Platform)
	assert.Equal(t, 2, got[2].Position)
}

func TestStore_PlatformStates(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.LatestStates(ctx, "game_x")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeRoundStateNotFound))

	require.NoError(t, s.CreateStates(ctx, []storage.PlatformState{
		{SessionID: "game_x", RoundNumber: 1, PlatformName: "Facebook", PlayerTrust: 50, AITrust: 50, SpreadRate: 50},
		{SessionID: "game_x", RoundNumber: 1, PlatformName: "Instagram", PlayerTrust: 50, AITrust: 50, SpreadRate: 50},
	}))
	// Upserting the same key twice keeps one row with the new values.
	require.NoError(t, s.UpsertState(ctx, storage.PlatformState{
		SessionID: "game_x", RoundNumber: 2, PlatformName: "Facebook", PlayerTrust: 62, AITrust: 55, SpreadRate: 52,
	}))
	require.NoError(t, s.UpsertState(ctx, storage.PlatformState{
		SessionID: "game_x", RoundNumber: 2, PlatformName: "Facebook", PlayerTrust: 63, AITrust: 55, SpreadRate: 52,
	}))

	latest, err := s.LatestStates(ctx, "game_x")
	require.NoError(t, err)
	require.Len(t, latest, 2)
	byName := map[string]storage.PlatformState{}
	for _, row := range latest {
		byName[row.PlatformName] = row
	}
	assert.Equal(t, 2, byName["Facebook"].RoundNumber)
	assert.Equal(t, 63, byName["Facebook"].PlayerTrust)
	assert.Equal(t, 1, byName["Instagram"].RoundNumber)
}

func TestStore_Rounds(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.CurrentRound(ctx, "game_x")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeRoundNotFound))

	require.NoError(t, s.CreateRound(ctx, storage.Round{SessionID: "game_x", RoundNumber: 1, NewsID: 3}))
	require.NoError(t, s.CreateRound(ctx, storage.Round{SessionID: "game_x", RoundNumber: 2, NewsID: 5}))

	cur, err := s.CurrentRound(ctx, "game_x")
	require.NoError(t, err)
	assert.Equal(t, 2, cur.RoundNumber)
	assert.Equal(t, int64(5), cur.NewsID)
	assert.False(t, cur.Completed)

	require.NoError(t, s.CompleteRound(ctx, "game_x", 2))
	cur, err = s.CurrentRound(ctx, "game_x")
	require.NoError(t, err)
	assert.True(t, cur.Completed)

	err = s.CompleteRound(ctx, "game_x", 42)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeRoundNotFound))
}

func TestStore_Actions(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateAction(ctx, storage.Action{
		ID: "a1", SessionID: "game_x", RoundNumber: 1, Actor: game.ActorAI,
		Platform: "Facebook", Title: "ai one", Content: "c",
		TrustChange: 5, SpreadChange: 2, ReachCount: 100, Effectiveness: "medium",
		SimulatedComments: []string{"wow", "hm"},
	}))
	require.NoError(t, s.CreateAction(ctx, storage.Action{
		ID: "a2", SessionID: "game_x", RoundNumber: 1, Actor: game.ActorPlayer,
		Platform: "Facebook", Title: "player one", Content: "c", Effectiveness: "high",
	}))

	round1, err := s.ActionsForRound(ctx, "game_x", 1)
	require.NoError(t, err)
	require.Len(t, round1, 2)
	byActor := map[game.Actor]storage.Action{}
	for _, action := range round1 {
		byActor[action.Actor] = action
	}
	assert.Equal(t, []string{"wow", "hm"}, byActor[game.ActorAI].SimulatedComments)

	// Replaying the same (session, round, actor) replaces the record.
	require.NoError(t, s.CreateAction(ctx, storage.Action{
		ID: "a3", SessionID: "game_x", RoundNumber: 1, Actor: game.ActorAI,
		Platform: "Thread", Title: "replaced", Content: "c", Effectiveness: "low",
	}))
	round1, err = s.ActionsForRound(ctx, "game_x", 1)
	require.NoError(t, err)
	require.Len(t, round1, 2)

	prior, err := s.PlayerActionsBefore(ctx, "game_x", 2)
	require.NoError(t, err)
	require.Len(t, prior, 1)
	assert.Equal(t, "player one", prior[0].Title)
}

func TestStore_ToolUsages(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	usage := storage.ToolUsage{
		SessionID: "game_x", Tool: "fact_check", User: game.ActorPlayer,
		RoundNumber: 1, TrustEffect: 1.2, SpreadEffect: 1.0,
	}
	require.NoError(t, s.RecordToolUsage(ctx, usage))
	usage.RoundNumber = 3
	require.NoError(t, s.RecordToolUsage(ctx, usage))

	got, err := s.ToolUsages(ctx, "game_x")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].RoundNumber)
	assert.Equal(t, 1.2, got[0].TrustEffect)
}

func TestStore_News(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.RandomActiveNews(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeNewsNotFound))

	require.NoError(t, s.SeedNews(ctx, []storage.News{
		{Title: "dormant", Content: "c", Veracity: "true", Active: false},
		{Title: "live", Content: "c", Veracity: "fake", Active: true},
	}))

	item, err := s.RandomActiveNews(ctx)
	require.NoError(t, err)
	assert.Equal(t, "live", item.Title)
	assert.True(t, item.Active)
}

func TestStore_AgentDefinitions(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	_, err := s.AgentDefinition(ctx, agent.EvaluatorAgentName)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	def := agent.Definition{
		Name: agent.EvaluatorAgentName, Provider: "anthropic", ModelName: "claude-sonnet-4-20250514",
		Instruction: "score fairly", Temperature: 0.2,
	}
	require.NoError(t, s.PutAgentDefinition(ctx, def))

	got, err := s.AgentDefinition(ctx, agent.EvaluatorAgentName)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	// Put replaces by name.
	def.Temperature = 0.5
	require.NoError(t, s.PutAgentDefinition(ctx, def))
	got, err = s.AgentDefinition(ctx, agent.EvaluatorAgentName)
	require.NoError(t, err)
	assert.Equal(t, 0.5, got.Temperature)
}

func TestStore_ToolDefinitions(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	defs, err := s.ToolDefinitions(ctx)
	require.NoError(t, err)
	assert.Empty(t, defs)

	require.NoError(t, s.PutToolDefinition(ctx, tool.Tool{
		Name: "meme_format", Description: "shareable meme", ApplicableTo: tool.RoleAI,
		TrustEffect: 1.0, SpreadEffect: 1.4, AvailableFromRound: 2,
	}))
	require.NoError(t, s.PutToolDefinition(ctx, tool.Tool{
		Name: "fact_check", ApplicableTo: tool.RolePlayer, TrustEffect: 1.3, SpreadEffect: 1.0, AvailableFromRound: 1,
	}))
	// Put replaces by name.
	require.NoError(t, s.PutToolDefinition(ctx, tool.Tool{
		Name: "fact_check", ApplicableTo: tool.RolePlayer, TrustEffect: 1.25, SpreadEffect: 1.0, AvailableFromRound: 1,
	}))

	defs, err = s.ToolDefinitions(ctx)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "fact_check", defs[0].Name)
	assert.Equal(t, 1.25, defs[0].TrustEffect)
	assert.Equal(t, tool.RoleAI, defs[1].ApplicableTo)

	catalog, err := tool.LoadCatalog(ctx, s)
	require.NoError(t, err)
	got, ok := catalog.Get("meme_format")
	require.True(t, ok)
	assert.Equal(t, 2, got.AvailableFromRound)
}

func TestStore_RecordPolish(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.RecordPolish(ctx, storage.PolishRecord{
		ID: "p1", SessionID: "game_x", RoundNumber: 1,
		Original: "draft", Polished: "better draft", Requirements: "formal",
	}))

	err := s.RecordPolish(ctx, storage.PolishRecord{SessionID: "game_x"})
	require.Error(t, err)
}
