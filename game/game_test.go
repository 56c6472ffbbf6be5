package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore_Clamping(t *testing.T) {
	assert.Equal(t, Score(0), NewScore(-10))
	assert.Equal(t, Score(100), NewScore(250))
	assert.Equal(t, Score(42), NewScore(42))

	assert.Equal(t, Score(100), NewScore(95).Apply(20))
	assert.Equal(t, Score(0), NewScore(5).Apply(-20))
	assert.Equal(t, Score(62), NewScore(50).Apply(12))
}

func TestGame_ResolvePlatform(t *testing.T) {
	g := &Game{
		SessionID:    "game-1",
		CurrentRound: 1,
		Platforms: []Platform{
			{Name: "Facebook", Audience: "elderly"},
			{Name: "Instagram", Audience: "young"},
		},
	}

	p, ok := g.ResolvePlatform("Instagram")
	assert.True(t, ok)
	assert.Equal(t, "Instagram", p.Name)

	// Unknown and empty names fall back to the first configured platform.
	p, ok = g.ResolvePlatform("MySpace")
	assert.False(t, ok)
	assert.Equal(t, "Facebook", p.Name)

	p, ok = g.ResolvePlatform("")
	assert.False(t, ok)
	assert.Equal(t, "Facebook", p.Name)
}

func TestGame_ResolvePlatform_NoPlatforms(t *testing.T) {
	g := &Game{SessionID: "game-1"}
	p, ok := g.ResolvePlatform("Facebook")
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestGame_SummedTrust(t *testing.T) {
	g := &Game{Platforms: []Platform{
		{Name: "Facebook", PlayerTrust: 60, AITrust: 40},
		{Name: "Instagram", PlayerTrust: 55, AITrust: 45},
	}}

	assert.Equal(t, 115, g.SummedTrust(ActorPlayer))
	assert.Equal(t, 85, g.SummedTrust(ActorAI))
}

func TestGame_AdvanceRound(t *testing.T) {
	g := &Game{CurrentRound: 1}
	g.AdvanceRound()
	g.AdvanceRound()
	assert.Equal(t, 3, g.CurrentRound)
}

func TestActor_Valid(t *testing.T) {
	assert.True(t, ActorAI.Valid())
	assert.True(t, ActorPlayer.Valid())
	assert.False(t, Actor("referee").Valid())
	assert.False(t, Actor("").Valid())
}

func TestArticle_EvaluationContent(t *testing.T) {
	a := Article{Content: "raw draft"}
	assert.Equal(t, "raw draft", a.EvaluationContent())

	a.PolishedContent = "polished text"
	assert.Equal(t, "polished text", a.EvaluationContent())
}

func TestArticle_Sanitized(t *testing.T) {
	a := Article{Title: "t", Content: "c", Veracity: "fake"}
	clean := a.Sanitized()
	assert.Empty(t, clean.Veracity)
	assert.Equal(t, "t", clean.Title)
	// Original is untouched.
	assert.Equal(t, "fake", a.Veracity)
}
