package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mchuang-tw/salespoints/internal/common"
	"github.com/mchuang-tw/salespoints/internal/denylist"
)

// LoadDenyList returns the persisted deny-list in stored order. When
// nothing has been persisted, or the persisted data cannot be read, it
// falls back to the built-in default set; load failures are logged but
// never fatal.
func (s *SQLiteStorage) LoadDenyList(ctx context.Context) []string {
	if err := validateContext(ctx); err != nil {
		return denylist.Default()
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT product_id FROM deny_list ORDER BY position`)
	if err != nil {
		slog.Warn("failed to load deny-list, using defaults", "error", err)
		return denylist.Default()
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			slog.Warn("failed to scan deny-list entry, using defaults", "error", err)
			return denylist.Default()
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		slog.Warn("failed to iterate deny-list, using defaults", "error", err)
		return denylist.Default()
	}

	if len(ids) == 0 {
		return denylist.Default()
	}

	slog.Debug("loaded deny-list", "count", len(ids))
	return ids
}

// SaveDenyList replaces the persisted deny-list atomically. The list must
// already be duplicate-free: callers resolve duplicates with the user
// before persisting, the store never silently drops entries.
func (s *SQLiteStorage) SaveDenyList(ctx context.Context, ids []string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if dups := denylist.Duplicates(ids); len(dups) > 0 {
		return fmt.Errorf("%w: %v", common.ErrDuplicateEntries, dups)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM deny_list`); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to clear deny-list: %w", err)
	}

	for i, id := range ids {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO deny_list (position, product_id) VALUES (?, ?)`,
			i, id,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert deny-list entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deny-list: %w", err)
	}

	slog.Info("saved deny-list", "count", len(ids))
	return nil
}

// ResetDenyList clears the persisted override so loads fall back to the
// built-in default set.
func (s *SQLiteStorage) ResetDenyList(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM deny_list`); err != nil {
		return fmt.Errorf("failed to reset deny-list: %w", err)
	}

	slog.Info("deny-list reset to defaults")
	return nil
}
