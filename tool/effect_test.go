package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hina-lin/sustainet-inc/game"
)

func testCatalog() *StaticCatalog {
	return NewStaticCatalog(
		Tool{Name: "fact_check", ApplicableTo: RolePlayer, TrustEffect: 1.2, SpreadEffect: 1.0},
		Tool{Name: "meme_format", ApplicableTo: RoleAI, TrustEffect: 1.0, SpreadEffect: 1.4},
		Tool{Name: "influencer_boost", ApplicableTo: RoleBoth, TrustEffect: 1.1, SpreadEffect: 1.2},
	)
}

func TestApplicator_Apply_FirstUse(t *testing.T) {
	a := NewApplicator(testCatalog())

	adj := a.Apply(10, 5, game.ActorPlayer, []string{"fact_check"}, nil)

	// +10 trust with a 1.2 factor rounds to +12; spread factor is 1.0.
	assert.Equal(t, 12, adj.TrustChange)
	assert.Equal(t, 5, adj.SpreadChange)
	require.Len(t, adj.Applications, 1)
	assert.True(t, adj.Applications[0].Effective)
	assert.Equal(t, 1.2, adj.Applications[0].TrustEffect)
	assert.Len(t, adj.Effective(), 1)
}

func TestApplicator_Apply_RepeatIsNotEffective(t *testing.T) {
	a := NewApplicator(testCatalog())
	used := map[UsageKey]bool{{Tool: "fact_check", User: game.ActorPlayer}: true}

	adj := a.Apply(10, 5, game.ActorPlayer, []string{"fact_check"}, used)

	// The second use is accepted but acts as a 1.0 factor.
	assert.Equal(t, 10, adj.TrustChange)
	assert.Equal(t, 5, adj.SpreadChange)
	require.Len(t, adj.Applications, 1)
	assert.False(t, adj.Applications[0].Effective)
	assert.Empty(t, adj.Effective())
}

func TestApplicator_Apply_DuplicateWithinRequest(t *testing.T) {
	a := NewApplicator(testCatalog())

	adj := a.Apply(10, 5, game.ActorPlayer, []string{"fact_check", "fact_check"}, nil)

	// Listing a tool twice in one request counts once; the second
	// occurrence is accepted but inert, same as a replay across turns.
	assert.Equal(t, 12, adj.TrustChange)
	assert.Equal(t, 5, adj.SpreadChange)
	require.Len(t, adj.Applications, 2)
	assert.True(t, adj.Applications[0].Effective)
	assert.False(t, adj.Applications[1].Effective)
	assert.Len(t, adj.Effective(), 1)
}

func TestApplicator_Apply_PerUserHistory(t *testing.T) {
	a := NewApplicator(testCatalog())
	// The AI having used the tool does not block the player.
	used := map[UsageKey]bool{{Tool: "influencer_boost", User: game.ActorAI}: true}

	adj := a.Apply(10, 10, game.ActorPlayer, []string{"influencer_boost"}, used)
	assert.True(t, adj.Applications[0].Effective)
}

func TestApplicator_Apply_UnknownAndMismatchedTools(t *testing.T) {
	a := NewApplicator(testCatalog())

	adj := a.Apply(10, 10, game.ActorPlayer, []string{"missing", "meme_format"}, nil)

	// Unknown tools and tools for the other actor are recorded but inert.
	assert.Equal(t, 10, adj.TrustChange)
	assert.Equal(t, 10, adj.SpreadChange)
	require.Len(t, adj.Applications, 2)
	assert.False(t, adj.Applications[0].Effective)
	assert.False(t, adj.Applications[1].Effective)
}

func TestApplicator_Apply_MultiplicativeComposition(t *testing.T) {
	a := NewApplicator(testCatalog())

	forward := a.Apply(10, 10, game.ActorPlayer, []string{"fact_check", "influencer_boost"}, nil)
	reversed := a.Apply(10, 10, game.ActorPlayer, []string{"influencer_boost", "fact_check"}, nil)

	// 10 * 1.2 * 1.1 = 13.2 rounds to 13; order does not matter.
	assert.Equal(t, 13, forward.TrustChange)
	assert.Equal(t, 12, forward.SpreadChange)
	assert.Equal(t, forward.TrustChange, reversed.TrustChange)
	assert.Equal(t, forward.SpreadChange, reversed.SpreadChange)
}

func TestApplicator_Apply_NegativeDeltas(t *testing.T) {
	a := NewApplicator(testCatalog())

	adj := a.Apply(-10, -5, game.ActorPlayer, []string{"fact_check"}, nil)

	// Rounding is half away from zero, symmetric with the positive case.
	assert.Equal(t, -12, adj.TrustChange)
	assert.Equal(t, -5, adj.SpreadChange)
}

func TestApplicator_Apply_NoTools(t *testing.T) {
	a := NewApplicator(testCatalog())

	adj := a.Apply(7, -3, game.ActorAI, nil, nil)
	assert.Equal(t, 7, adj.TrustChange)
	assert.Equal(t, -3, adj.SpreadChange)
	assert.Empty(t, adj.Applications)
}
