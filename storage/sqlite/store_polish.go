package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hina-lin/sustainet-inc/storage"
)

// RecordPolish stores one polish invocation.
func (s *Store) RecordPolish(ctx context.Context, row storage.PolishRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}
	if strings.TrimSpace(row.ID) == "" {
		return fmt.Errorf("polish record id is required")
	}
	createdAt := row.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO polish_records (
		   id, session_id, round_number, original, polished, requirements, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.ID,
		row.SessionID,
		row.RoundNumber,
		row.Original,
		row.Polished,
		row.Requirements,
		toMillis(createdAt),
	)
	if err != nil {
		return fmt.Errorf("record polish: %w", err)
	}
	return nil
}
