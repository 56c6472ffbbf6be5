package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hina-lin/sustainet-inc/game"
	"github.com/hina-lin/sustainet-inc/model"
)

func TestModelGenerator_Generate(t *testing.T) {
	m := model.NewMockModel("m", "mock")
	m.SetFallback(`{"title": "Hot Take", "content": "Totally real", "target_platform": "Instagram", "veracity": "fake", "tool_used": ["meme_format"]}`)

	gen, err := NewModelGenerator(m).Generate(context.Background(), GenerationVariables{
		News1:        "reference story",
		CurrentRound: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hot Take", gen.Title)
	assert.Equal(t, "Instagram", gen.TargetPlatform)
	assert.Equal(t, []string{"meme_format"}, gen.ToolsUsed)

	// The round is rendered into the instruction and the variables travel as
	// JSON input.
	reqs := m.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].Instructions, "round 2")
	assert.Contains(t, reqs[0].Input, "reference story")
}

func TestModelGenerator_Generate_ModelFailure(t *testing.T) {
	m := model.NewMockModel("m", "mock")
	m.SetError(errors.New("rate limited"))

	_, err := NewModelGenerator(m).Generate(context.Background(), GenerationVariables{CurrentRound: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestModelEvaluator_Evaluate(t *testing.T) {
	m := model.NewMockModel("m", "mock")
	m.SetFallback(`{"trust_change": 5, "spread_change": -2, "effectiveness": "high", "platform_status": []}`)

	eval, err := NewModelEvaluator(m).Evaluate(context.Background(), EvaluationInput{
		Article: game.Article{Title: "t", Content: "c", Author: game.ActorPlayer},
		Round:   1,
		Actor:   game.ActorPlayer,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, eval.TrustChange)
	assert.Equal(t, -2, eval.SpreadChange)
	assert.Equal(t, EffectivenessHigh, eval.Effectiveness)
}

func TestModelCommentSimulator_Simulate(t *testing.T) {
	m := model.NewMockModel("m", "mock")
	m.SetFallback(`{"comments": ["lol", "is this true?"]}`)

	comments, err := NewModelCommentSimulator(m).Simulate(context.Background(), CommentInput{
		Title: "t", Content: "c", Platform: "Facebook", Actor: game.ActorAI, Round: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"lol", "is this true?"}, comments)
}

func TestModelPolisher_Polish(t *testing.T) {
	m := model.NewMockModel("m", "mock")
	m.SetFallback("  A much better article.  \n")

	polished, err := NewModelPolisher(m).Polish(context.Background(), PolishInput{
		Content:      "an article",
		Requirements: "more formal",
	})
	require.NoError(t, err)
	assert.Equal(t, "A much better article.", polished)
}
