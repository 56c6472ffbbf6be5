package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/hina-lin/sustainet-inc/internal/errors"
	"github.com/hina-lin/sustainet-inc/storage"
)

// RandomActiveNews returns a uniformly chosen active news item.
func (s *Store) RandomActiveNews(ctx context.Context) (storage.News, error) {
	if err := ctx.Err(); err != nil {
		return storage.News{}, err
	}
	if err := s.ready(); err != nil {
		return storage.News{}, err
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, title, content, image_url, source, veracity, active
		   FROM news
		  WHERE active = 1
		  ORDER BY RANDOM()
		  LIMIT 1`,
	)

	var out storage.News
	var active int
	err := row.Scan(&out.ID, &out.Title, &out.Content, &out.ImageURL, &out.Source, &out.Veracity, &active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.News{}, apperrors.New(apperrors.CodeNewsNotFound, "no active news items")
		}
		return storage.News{}, fmt.Errorf("random active news: %w", err)
	}
	out.Active = active != 0
	return out, nil
}

// SeedNews inserts reference news items. Existing rows are untouched; use it
// to load an initial corpus into a fresh database.
func (s *Store) SeedNews(ctx context.Context, items []storage.News) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.ready(); err != nil {
		return err
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin news transaction: %w", err)
	}
	for _, item := range items {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO news (title, content, image_url, source, veracity, active)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			item.Title,
			item.Content,
			item.ImageURL,
			item.Source,
			item.Veracity,
			boolToInt(item.Active),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed news: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit news transaction: %w", err)
	}
	return nil
}
