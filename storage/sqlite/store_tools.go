package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hina-lin/sustainet-inc/game"
	"github.com/hina-lin/sustainet-inc/storage"
	"github.com/hina-lin/sustainet-inc/tool"
)

// RecordToolUsage stores one effective application; recording the same
// (session, tool, user) again is a no-op.
func (s *Store) RecordToolUsage(ctx context.Context, row storage.ToolUsage) error {
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
	toolName := strings.TrimSpace(row.Tool)
	if toolName == "" {
		return fmt.Errorf("tool name is required")
	}
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO tool_usages (
		   session_id, tool, user, round_number,
		   trust_effect, spread_effect, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sessionID,
		toolName,
		string(row.User),
		row.RoundNumber,
		row.TrustEffect,
		row.SpreadEffect,
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("record tool usage: %w", err)
	}
	return nil
}

// ToolUsages returns all effective applications of the session.
func (s *Store) ToolUsages(ctx context.Context, sessionID string) ([]storage.ToolUsage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT session_id, tool, user, round_number,
		        trust_effect, spread_effect, created_at
		   FROM tool_usages
		  WHERE session_id = ?
		  ORDER BY created_at ASC, tool ASC`,
		strings.TrimSpace(sessionID),
	)
	if err != nil {
		return nil, fmt.Errorf("tool usages: %w", err)
	}
	defer rows.Close()

	var out []storage.ToolUsage
	for rows.Next() {
		var row storage.ToolUsage
		var user string
		var createdAt int64
		if err := rows.Scan(
			&row.SessionID,
			&row.Tool,
			&user,
			&row.RoundNumber,
			&row.TrustEffect,
			&row.SpreadEffect,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan tool usage: %w", err)
		}
		row.User = game.Actor(user)
		row.CreatedAt = fromMillis(createdAt)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tool usages: %w", err)
	}
	return out, nil
}

// PutToolDefinition creates or replaces a tool definition by name.
func (s *Store) PutToolDefinition(ctx context.Context, t tool.Tool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return fmt.Errorf("tool name is required")
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO tool_definitions (
		   name, description, applicable_to,
		   trust_effect, spread_effect, available_from_round
		 ) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (name) DO UPDATE SET
		   description = excluded.description,
		   applicable_to = excluded.applicable_to,
		   trust_effect = excluded.trust_effect,
		   spread_effect = excluded.spread_effect,
		   available_from_round = excluded.available_from_round`,
		name,
		t.Description,
		string(t.ApplicableTo),
		t.TrustEffect,
		t.SpreadEffect,
		t.AvailableFromRound,
	)
	if err != nil {
		return fmt.Errorf("put tool definition: %w", err)
	}
	return nil
}

// ToolDefinitions returns every stored tool definition in name order.
func (s *Store) ToolDefinitions(ctx context.Context) ([]tool.Tool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT name, description, applicable_to,
		        trust_effect, spread_effect, available_from_round
		   FROM tool_definitions
		  ORDER BY name ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("tool definitions: %w", err)
	}
	defer rows.Close()

	var out []tool.Tool
	for rows.Next() {
		var t tool.Tool
		var role string
		if err := rows.Scan(
			&t.Name,
			&t.Description,
			&role,
			&t.TrustEffect,
			&t.SpreadEffect,
			&t.AvailableFromRound,
		); err != nil {
			return nil, fmt.Errorf("scan tool definition: %w", err)
		}
		t.ApplicableTo = tool.Role(role)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("tool definitions: %w", err)
	}
	return out, nil
}
