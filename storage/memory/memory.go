// Package memory provides a volatile storage.Gateway implementation backed by
// process-local maps. It is safe for concurrent access and best suited for
// tests or ephemeral demo runs; nothing survives a restart.
package memory

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/hina-lin/sustainet-inc/agent"
	"github.com/hina-lin/sustainet-inc/game"
	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
	"github.com/hina-lin/sustainet-inc/storage"
	"github.com/hina-lin/sustainet-inc/tool"
)

type usageKey struct {
	session string
	tool    string
	user    string
}

type stateKey struct {
	session  string
	round    int
	platform string
}

// Store is an in-memory Gateway. Returned slices are copies so callers cannot
// mutate internal state.
type Store struct {
	mu      sync.RWMutex
	setups  map[string][]storage.Setup
	states  map[stateKey]storage.PlatformState
	rounds  map[string][]storage.Round
	actions map[string][]storage.Action
	usages  map[usageKey]storage.ToolUsage
	news    []storage.News
	agents  map[string]agent.Definition
	tools   map[string]tool.Tool
	polish  []storage.PolishRecord

	rand *rand.Rand
}

var _ storage.Gateway = (*Store)(nil)

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		setups:  make(map[string][]storage.Setup),
		states:  make(map[stateKey]storage.PlatformState),
		rounds:  make(map[string][]storage.Round),
		actions: make(map[string][]storage.Action),
		usages:  make(map[usageKey]storage.ToolUsage),
		agents:  make(map[string]agent.Definition),
		tools:   make(map[string]tool.Tool),
		rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateSetup stores one row per platform of a new session.
func (s *Store) CreateSetup(_ context.Context, rows []storage.Setup) error {
	if len(rows) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setups[rows[0].SessionID] = append([]storage.Setup(nil), rows...)
	return nil
}

// GetSetup returns the session's setup rows.
func (s *Store) GetSetup(_ context.Context, sessionID string) ([]storage.Setup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.setups[sessionID]
	if !ok {
		return nil, apperrors.New(apperrors.CodeGameSetupNotFound, "no setup for session "+sessionID)
	}
	return append([]storage.Setup(nil), rows...), nil
}

// CreateStates stores the initial platform states.
func (s *Store) CreateStates(_ context.Context, rows []storage.PlatformState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		s.states[stateKey{row.SessionID, row.RoundNumber, row.PlatformName}] = row
	}
	return nil
}

// UpsertState creates or updates one (session, round, platform) state row.
func (s *Store) UpsertState(_ context.Context, row storage.PlatformState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[stateKey{row.SessionID, row.RoundNumber, row.PlatformName}] = row
	return nil
}

// LatestStates returns the newest state row per platform of the session.
func (s *Store) LatestStates(_ context.Context, sessionID string) ([]storage.PlatformState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest := make(map[string]storage.PlatformState)
	for key, row := range s.states {
		if key.session != sessionID {
			continue
		}
		if cur, ok := latest[key.platform]; !ok || row.RoundNumber > cur.RoundNumber {
			latest[key.platform] = row
		}
	}
	if len(latest) == 0 {
		return nil, apperrors.New(apperrors.CodeRoundStateNotFound, "no platform state for session "+sessionID)
	}
	rows := make([]storage.PlatformState, 0, len(latest))
	for _, row := range latest {
		rows = append(rows, row)
	}
	return rows, nil
}

// CreateRound stores a new round record.
func (s *Store) CreateRound(_ context.Context, row storage.Round) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds[row.SessionID] = append(s.rounds[row.SessionID], row)
	return nil
}

// CurrentRound returns the highest-numbered round of the session.
func (s *Store) CurrentRound(_ context.Context, sessionID string) (storage.Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows := s.rounds[sessionID]
	if len(rows) == 0 {
		return storage.Round{}, apperrors.New(apperrors.CodeRoundNotFound, "no rounds for session "+sessionID)
	}
	current := rows[0]
	for _, row := range rows[1:] {
		if row.RoundNumber > current.RoundNumber {
			current = row
		}
	}
	return current, nil
}

// CompleteRound marks the round as completed.
func (s *Store) CompleteRound(_ context.Context, sessionID string, roundNumber int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.rounds[sessionID]
	for i := range rows {
		if rows[i].RoundNumber == roundNumber {
			rows[i].Completed = true
			return nil
		}
	}
	return apperrors.New(apperrors.CodeRoundNotFound, "no such round for session "+sessionID)
}

// CreateAction stores one evaluated action, replacing a prior record of the
// same (session, round, actor).
func (s *Store) CreateAction(_ context.Context, row storage.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := s.actions[row.SessionID]
	for i := range rows {
		if rows[i].RoundNumber == row.RoundNumber && rows[i].Actor == row.Actor {
			rows[i] = row
			return nil
		}
	}
	s.actions[row.SessionID] = append(rows, row)
	return nil
}

// ActionsForRound returns the round's actions in creation order.
func (s *Store) ActionsForRound(_ context.Context, sessionID string, roundNumber int) ([]storage.Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []storage.Action
	for _, row := range s.actions[sessionID] {
		if row.RoundNumber == roundNumber {
			out = append(out, row)
		}
	}
	return out, nil
}

// PlayerActionsBefore returns the player's actions from earlier rounds,
// oldest first.
func (s *Store) PlayerActionsBefore(_ context.Context, sessionID string, roundNumber int) ([]storage.Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []storage.Action
	for _, row := range s.actions[sessionID] {
		if row.Actor == game.ActorPlayer && row.RoundNumber < roundNumber {
			out = append(out, row)
		}
	}
	return out, nil
}

// RecordToolUsage stores one effective application; repeats are no-ops.
func (s *Store) RecordToolUsage(_ context.Context, row storage.ToolUsage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := usageKey{row.SessionID, row.Tool, string(row.User)}
	if _, ok := s.usages[key]; ok {
		return nil
	}
	s.usages[key] = row
	return nil
}

// ToolUsages returns all effective applications of the session.
func (s *Store) ToolUsages(_ context.Context, sessionID string) ([]storage.ToolUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []storage.ToolUsage
	for _, row := range s.usages {
		if row.SessionID == sessionID {
			out = append(out, row)
		}
	}
	return out, nil
}

// SeedNews appends reference news items to the in-memory corpus.
func (s *Store) SeedNews(_ context.Context, items []storage.News) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range items {
		item.ID = int64(len(s.news) + 1)
		s.news = append(s.news, item)
	}
	return nil
}

// RandomActiveNews returns a uniformly chosen active item.
func (s *Store) RandomActiveNews(_ context.Context) (storage.News, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var active []storage.News
	for _, item := range s.news {
		if item.Active {
			active = append(active, item)
		}
	}
	if len(active) == 0 {
		return storage.News{}, apperrors.New(apperrors.CodeNewsNotFound, "no active news items")
	}
	return active[s.rand.Intn(len(active))], nil
}

// PutAgentDefinition creates or replaces a definition by name.
func (s *Store) PutAgentDefinition(_ context.Context, def agent.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agents[def.Name] = def
	return nil
}

// AgentDefinition looks up a definition by name.
func (s *Store) AgentDefinition(_ context.Context, name string) (agent.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	def, ok := s.agents[name]
	if !ok {
		return agent.Definition{}, apperrors.New(apperrors.CodeAgentNotFound, "agent "+name+" not found")
	}
	return def, nil
}

// PutToolDefinition creates or replaces a tool definition by name.
func (s *Store) PutToolDefinition(_ context.Context, t tool.Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tools[t.Name] = t
	return nil
}

// ToolDefinitions returns every stored tool definition in name order.
func (s *Store) ToolDefinitions(_ context.Context) ([]tool.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]tool.Tool, 0, len(s.tools))
	for _, t := range s.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// RecordPolish stores one polish invocation.
func (s *Store) RecordPolish(_ context.Context, row storage.PolishRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.polish = append(s.polish, row)
	return nil
}
