package sqlite

import (
	"context"
	"fmt"

	"github.com/steveyegge/mocktab/internal/types"
)

// ReplaceRankings swaps the stored ranking rows for entries in one
// transaction and returns the number stored.
func (s *SQLiteStorage) ReplaceRankings(ctx context.Context, entries []types.NameEntry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rankings`); err != nil {
		return 0, fmt.Errorf("failed to clear rankings: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rankings (row_index, team, side, competitor_name)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.Row, e.Team, e.Side, e.CompetitorName); err != nil {
			return 0, fmt.Errorf("failed to insert ranking row %d: %w", e.Row, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit rankings: %w", err)
	}
	return len(entries), nil
}

// GetRankings returns the stored ranking rows in source order
func (s *SQLiteStorage) GetRankings(ctx context.Context) ([]types.NameEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT row_index, team, side, competitor_name
		FROM rankings
		ORDER BY row_index
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rankings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []types.NameEntry
	for rows.Next() {
		var e types.NameEntry
		if err := rows.Scan(&e.Row, &e.Team, &e.Side, &e.CompetitorName); err != nil {
			return nil, fmt.Errorf("failed to scan ranking row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rankings: %w", err)
	}
	return entries, nil
}
