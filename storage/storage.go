package storage

import (
	"context"
	"time"

	"github.com/hina-lin/sustainet-inc/agent"
	"github.com/hina-lin/sustainet-inc/game"
	"github.com/hina-lin/sustainet-inc/tool"
)

// Setup is one persisted platform↔audience pairing of a session. A session's
// setup is the row set sharing its session id.
type Setup struct {
	SessionID string
	Platform  string
	Audience  string
	// Position fixes the configured platform order so reconstitution keeps
	// the same first-platform fallback target as the original setup.
	Position  int
	CreatedAt time.Time
}

// PlatformState is the persisted per-round state of one platform.
type PlatformState struct {
	SessionID    string
	RoundNumber  int
	PlatformName string
	PlayerTrust  int
	AITrust      int
	SpreadRate   int
	UpdatedAt    time.Time
}

// Round is the persisted round record. A round is completed only once the
// player's action has been evaluated.
type Round struct {
	SessionID   string
	RoundNumber int
	NewsID      int64
	Completed   bool
	CreatedAt   time.Time
}

// Action is the persisted record of one actor's evaluated turn.
type Action struct {
	ID                string
	SessionID         string
	RoundNumber       int
	Actor             game.Actor
	Platform          string
	Title             string
	Content           string
	PolishedContent   string
	TrustChange       int
	SpreadChange      int
	ReachCount        int
	Effectiveness     string
	SimulatedComments []string
	CreatedAt         time.Time
}

// ToolUsage is one persisted effective tool application.
type ToolUsage struct {
	SessionID    string
	Tool         string
	User         game.Actor
	RoundNumber  int
	TrustEffect  float64
	SpreadEffect float64
	CreatedAt    time.Time
}

// News is one reference news item.
type News struct {
	ID       int64
	Title    string
	Content  string
	ImageURL string
	Source   string
	Veracity string
	Active   bool
}

// PolishRecord is one persisted polish invocation.
type PolishRecord struct {
	ID           string
	SessionID    string
	RoundNumber  int
	Original     string
	Polished     string
	Requirements string
	CreatedAt    time.Time
}

// SetupStore persists session setup rows.
type SetupStore interface {
	// CreateSetup stores one row per platform of a new session.
	CreateSetup(ctx context.Context, rows []Setup) error
	// GetSetup returns the session's setup rows, CodeGameSetupNotFound when absent.
	GetSetup(ctx context.Context, sessionID string) ([]Setup, error)
}

// PlatformStateStore persists per-round per-platform state rows.
type PlatformStateStore interface {
	// CreateStates stores the initial round-1 states.
	CreateStates(ctx context.Context, rows []PlatformState) error
	// UpsertState creates or updates one (session, round, platform) state row.
	UpsertState(ctx context.Context, row PlatformState) error
	// LatestStates returns the newest state row per platform of the session,
	// CodeRoundStateNotFound when the session has none.
	LatestStates(ctx context.Context, sessionID string) ([]PlatformState, error)
}

// RoundStore persists round records.
type RoundStore interface {
	// CreateRound stores a new round record.
	CreateRound(ctx context.Context, row Round) error
	// CurrentRound returns the highest-numbered round of the session,
	// CodeRoundNotFound when the session has none.
	CurrentRound(ctx context.Context, sessionID string) (Round, error)
	// CompleteRound marks the round as completed.
	CompleteRound(ctx context.Context, sessionID string, roundNumber int) error
}

// ActionStore persists evaluated actions.
type ActionStore interface {
	// CreateAction stores one evaluated action, replacing a prior record of
	// the same (session, round, actor).
	CreateAction(ctx context.Context, row Action) error
	// ActionsForRound returns the round's actions in creation order.
	ActionsForRound(ctx context.Context, sessionID string, roundNumber int) ([]Action, error)
	// PlayerActionsBefore returns the player's actions from rounds below
	// roundNumber, oldest first.
	PlayerActionsBefore(ctx context.Context, sessionID string, roundNumber int) ([]Action, error)
}

// ToolUsageStore persists effective tool applications.
type ToolUsageStore interface {
	// RecordToolUsage stores one effective application; recording the same
	// (session, tool, user) again is a no-op.
	RecordToolUsage(ctx context.Context, row ToolUsage) error
	// ToolUsages returns all effective applications of the session.
	ToolUsages(ctx context.Context, sessionID string) ([]ToolUsage, error)
}

// NewsStore supplies reference news items.
type NewsStore interface {
	// RandomActiveNews returns a uniformly chosen active item,
	// CodeNewsNotFound when none exist.
	RandomActiveNews(ctx context.Context) (News, error)
}

// AgentStore persists collaborator agent definitions.
type AgentStore interface {
	agent.DefinitionSource
	// PutAgentDefinition creates or replaces a definition by name.
	PutAgentDefinition(ctx context.Context, def agent.Definition) error
}

// ToolStore persists tool definitions.
type ToolStore interface {
	tool.DefinitionSource
	// PutToolDefinition creates or replaces a tool definition by name.
	PutToolDefinition(ctx context.Context, t tool.Tool) error
}

// PolishStore persists polish records.
type PolishStore interface {
	// RecordPolish stores one polish invocation.
	RecordPolish(ctx context.Context, row PolishRecord) error
}

// Gateway aggregates every store the engine depends on.
type Gateway interface {
	SetupStore
	PlatformStateStore
	RoundStore
	ActionStore
	ToolUsageStore
	NewsStore
	AgentStore
	ToolStore
	PolishStore
}
