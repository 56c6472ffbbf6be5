package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hina-lin/sustainet-inc/game"
	"github.com/hina-lin/sustainet-inc/storage"
)

// CreateAction stores one evaluated action, replacing a prior record of the
// same (session, round, actor).
func (s *Store) CreateAction(ctx context.Context, row storage.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	sessionID := strings.TrimSpace(row.SessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if !row.Actor.Valid() {
		return fmt.Errorf("actor %q is not valid", row.Actor)
	}
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	comments := row.SimulatedComments
	if comments == nil {
		comments = []string{}
	}
	commentsJSON, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("encode comments: %w", err)
	}

	_, err = s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO actions (
		   id, session_id, round_number, actor, platform,
		   title, content, polished_content,
		   trust_change, spread_change, reach_count, effectiveness,
		   simulated_comments, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (session_id, round_number, actor) DO UPDATE SET
		   id = excluded.id,
		   platform = excluded.platform,
		   title = excluded.title,
		   content = excluded.content,
		   polished_content = excluded.polished_content,
		   trust_change = excluded.trust_change,
		   spread_change = excluded.spread_change,
		   reach_count = excluded.reach_count,
		   effectiveness = excluded.effectiveness,
		   simulated_comments = excluded.simulated_comments,
		   created_at = excluded.created_at`,
		row.ID,
		sessionID,
		row.RoundNumber,
		string(row.Actor),
		row.Platform,
		row.Title,
		row.Content,
		row.PolishedContent,
		row.TrustChange,
		row.SpreadChange,
		row.ReachCount,
		row.Effectiveness,
		string(commentsJSON),
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("create action: %w", err)
	}
	return nil
}

// ActionsForRound returns the round's actions in creation order.
func (s *Store) ActionsForRound(ctx context.Context, sessionID string, roundNumber int) ([]storage.Action, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		actionSelect+`
		  WHERE session_id = ? AND round_number = ?
		  ORDER BY created_at ASC`,
		strings.TrimSpace(sessionID),
		roundNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("actions for round: %w", err)
	}
	defer rows.Close()
	return scanActions(rows)
}

// PlayerActionsBefore returns the player's actions from earlier rounds,
// oldest first.
func (s *Store) PlayerActionsBefore(ctx context.Context, sessionID string, roundNumber int) ([]storage.Action, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		actionSelect+`
		  WHERE session_id = ? AND actor = ? AND round_number < ?
		  ORDER BY round_number ASC, created_at ASC`,
		strings.TrimSpace(sessionID),
		string(game.ActorPlayer),
		roundNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("player actions: %w", err)
	}
	defer rows.Close()
	return scanActions(rows)
}

const actionSelect = `SELECT id, session_id, round_number, actor, platform,
		        title, content, polished_content,
		        trust_change, spread_change, reach_count, effectiveness,
		        simulated_comments, created_at
		   FROM actions`

func scanActions(rows *sql.Rows) ([]storage.Action, error) {
	var out []storage.Action
	for rows.Next() {
		var row storage.Action
		var actor string
		var commentsJSON string
		var createdAt int64
		if err := rows.Scan(
			&row.ID,
			&row.SessionID,
			&row.RoundNumber,
			&actor,
			&row.Platform,
			&row.Title,
			&row.Content,
			&row.PolishedContent,
			&row.TrustChange,
			&row.SpreadChange,
			&row.ReachCount,
			&row.Effectiveness,
			&commentsJSON,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		row.Actor = game.Actor(actor)
		row.CreatedAt = fromMillis(createdAt)
		if err := json.Unmarshal([]byte(commentsJSON), &row.SimulatedComments); err != nil {
			return nil, fmt.Errorf("decode comments: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan actions: %w", err)
	}
	return out, nil
}
