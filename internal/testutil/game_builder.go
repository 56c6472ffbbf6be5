package testutil

import (
	"github.com/hina-lin/sustainet-inc/game"
)

// GameBuilder provides a fluent helper for constructing game aggregates in
// tests. Example:
//
//	g := NewGameBuilder("game-1").Round(2).Platform("Facebook", "young", 50, 50, 50).Build()
//
// Chain only the parts you need; sensible defaults are applied.
type GameBuilder struct {
	sessionID string
	round     int
	platforms []game.Platform
}

// NewGameBuilder creates a builder for a game with the given session id.
func NewGameBuilder(sessionID string) *GameBuilder {
	return &GameBuilder{sessionID: sessionID, round: 1}
}

// Round sets the current round (chainable).
func (b *GameBuilder) Round(r int) *GameBuilder { b.round = r; return b }

// Platform appends one platform with explicit metrics (chainable).
func (b *GameBuilder) Platform(name, audience string, playerTrust, aiTrust, spread int) *GameBuilder {
	b.platforms = append(b.platforms, game.Platform{
		Name:        name,
		Audience:    audience,
		PlayerTrust: game.NewScore(playerTrust),
		AITrust:     game.NewScore(aiTrust),
		SpreadRate:  game.NewScore(spread),
	})
	return b
}

// DefaultPlatforms appends the standard three platforms at baseline 50
// (chainable).
func (b *GameBuilder) DefaultPlatforms() *GameBuilder {
	for i, name := range game.DefaultPlatformNames {
		b.Platform(name, game.DefaultAudiences[i], game.DefaultBaseline, game.DefaultBaseline, game.DefaultBaseline)
	}
	return b
}

// Build constructs the aggregate.
func (b *GameBuilder) Build() *game.Game {
	return &game.Game{
		SessionID:    b.sessionID,
		CurrentRound: b.round,
		Platforms:    b.platforms,
	}
}

// ArticleBuilder provides a fluent helper for constructing articles in tests.
type ArticleBuilder struct {
	article game.Article
}

// NewArticleBuilder creates a builder with a title, content and author.
func NewArticleBuilder(title, content string, author game.Actor) *ArticleBuilder {
	return &ArticleBuilder{article: game.Article{Title: title, Content: content, Author: author}}
}

// Platform sets the target platform (chainable).
func (b *ArticleBuilder) Platform(name string) *ArticleBuilder {
	b.article.TargetPlatform = name
	return b
}

// Polished sets the polished content (chainable).
func (b *ArticleBuilder) Polished(content string) *ArticleBuilder {
	b.article.PolishedContent = content
	return b
}

// Veracity sets the veracity label (chainable).
func (b *ArticleBuilder) Veracity(v string) *ArticleBuilder {
	b.article.Veracity = v
	return b
}

// Build constructs the article.
func (b *ArticleBuilder) Build() game.Article { return b.article }
