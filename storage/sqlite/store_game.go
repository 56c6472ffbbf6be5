package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
	"github.com/hina-lin/sustainet-inc/storage"
)

// CreateSetup inserts one row per platform of a new session.
func (s *Store) CreateSetup(ctx context.Context, rows []storage.Setup) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("setup rows are required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin setup transaction: %w", err)
	}
	for _, row := range rows {
		sessionID := strings.TrimSpace(row.SessionID)
		if sessionID == "" {
			_ = tx.Rollback()
			return fmt.Errorf("session id is required")
		}
		createdAt := row.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO game_setups (session_id, platform, audience, position, created_at)
			 VALUES (?, ?, ?, ?, ?)`,
			sessionID,
			row.Platform,
			row.Audience,
			row.Position,
			toMillis(createdAt),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("create setup: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit setup transaction: %w", err)
	}
	return nil
}

// GetSetup returns the session's setup rows in configured platform order.
func (s *Store) GetSetup(ctx context.Context, sessionID string) ([]storage.Setup, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT session_id, platform, audience, position, created_at
		   FROM game_setups
		  WHERE session_id = ?
		  ORDER BY position ASC, platform ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get setup: %w", err)
	}
	defer rows.Close()

	var out []storage.Setup
	for rows.Next() {
		var row storage.Setup
		var createdAt int64
		if err := rows.Scan(&row.SessionID, &row.Platform, &row.Audience, &row.Position, &createdAt); err != nil {
			return nil, fmt.Errorf("get setup: %w", err)
		}
		row.CreatedAt = fromMillis(createdAt)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get setup: %w", err)
	}
	if len(out) == 0 {
		return nil, apperrors.New(apperrors.CodeGameSetupNotFound, "no setup for session "+sessionID)
	}
	return out, nil
}

// CreateStates inserts the initial platform state rows.
func (s *Store) CreateStates(ctx context.Context, rows []storage.PlatformState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin state transaction: %w", err)
	}
	for _, row := range rows {
		if err := upsertStateTx(ctx, tx, row); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit state transaction: %w", err)
	}
	return nil
}

// UpsertState creates or updates one (session, round, platform) state row.
func (s *Store) UpsertState(ctx context.Context, row storage.PlatformState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin state transaction: %w", err)
	}
	if err := upsertStateTx(ctx, tx, row); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit state transaction: %w", err)
	}
	return nil
}

func upsertStateTx(ctx context.Context, tx *sql.Tx, row storage.PlatformState) error {
	sessionID := strings.TrimSpace(row.SessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	updatedAt := row.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	_, err := tx.ExecContext(
		ctx,
		`INSERT INTO platform_states (
		   session_id, round_number, platform,
		   player_trust, ai_trust, spread_rate, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (session_id, round_number, platform) DO UPDATE SET
		   player_trust = excluded.player_trust,
		   ai_trust = excluded.ai_trust,
		   spread_rate = excluded.spread_rate,
		   updated_at = excluded.updated_at`,
		sessionID,
		row.RoundNumber,
		row.PlatformName,
		row.PlayerTrust,
		row.AITrust,
		row.SpreadRate,
		toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("upsert platform state: %w", err)
	}
	return nil
}

// LatestStates returns the newest state row per platform of the session.
func (s *Store) LatestStates(ctx context.Context, sessionID string) ([]storage.PlatformState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT ps.session_id, ps.round_number, ps.platform,
		        ps.player_trust, ps.ai_trust, ps.spread_rate, ps.updated_at
		   FROM platform_states ps
		   JOIN (SELECT platform, MAX(round_number) AS round_number
		           FROM platform_states
		          WHERE session_id = ?
		          GROUP BY platform) latest
		     ON ps.platform = latest.platform
		    AND ps.round_number = latest.round_number
		  WHERE ps.session_id = ?
		  ORDER BY ps.platform ASC`,
		sessionID,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("latest platform states: %w", err)
	}
	defer rows.Close()

	var out []storage.PlatformState
	for rows.Next() {
		var row storage.PlatformState
		var updatedAt int64
		if err := rows.Scan(
			&row.SessionID,
			&row.RoundNumber,
			&row.PlatformName,
			&row.PlayerTrust,
			&row.AITrust,
			&row.SpreadRate,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("latest platform states: %w", err)
		}
		row.UpdatedAt = fromMillis(updatedAt)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("latest platform states: %w", err)
	}
	if len(out) == 0 {
		return nil, apperrors.New(apperrors.CodeRoundStateNotFound, "no platform state for session "+sessionID)
	}
	return out, nil
}

// CreateRound inserts a new round record.
func (s *Store) CreateRound(ctx context.Context, row storage.Round) error {
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
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO rounds (session_id, round_number, news_id, completed, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID,
		row.RoundNumber,
		row.NewsID,
		boolToInt(row.Completed),
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("create round: %w", err)
	}
	return nil
}

// CurrentRound returns the highest-numbered round of the session.
func (s *Store) CurrentRound(ctx context.Context, sessionID string) (storage.Round, error) {
	if err := ctx.Err(); err != nil {
		return storage.Round{}, err
	}
	if err := s.ready(); err != nil {
		return storage.Round{}, err
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return storage.Round{}, fmt.Errorf("session id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT session_id, round_number, news_id, completed, created_at
		   FROM rounds
		  WHERE session_id = ?
		  ORDER BY round_number DESC
		  LIMIT 1`,
		sessionID,
	)

	var out storage.Round
	var completed int
	var createdAt int64
	err := row.Scan(&out.SessionID, &out.RoundNumber, &out.NewsID, &completed, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Round{}, apperrors.New(apperrors.CodeRoundNotFound, "no rounds for session "+sessionID)
		}
		return storage.Round{}, fmt.Errorf("current round: %w", err)
	}
	out.Completed = completed != 0
	out.CreatedAt = fromMillis(createdAt)
	return out, nil
}

// CompleteRound marks the round as completed.
func (s *Store) CompleteRound(ctx context.Context, sessionID string, roundNumber int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	res, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE rounds SET completed = 1 WHERE session_id = ? AND round_number = ?`,
		strings.TrimSpace(sessionID),
		roundNumber,
	)
	if err != nil {
		return fmt.Errorf("complete round: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("complete round: %w", err)
	}
	if affected == 0 {
		return apperrors.New(apperrors.CodeRoundNotFound, "no such round for session "+sessionID)
	}
	return nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
