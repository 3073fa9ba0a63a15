package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/steveyegge/mocktab/internal/types"
)

// SaveReport stores rows, in order, as a new report and returns its ID
func (s *SQLiteStorage) SaveReport(ctx context.Context, rows []types.DuplicateRow) (string, error) {
	for i, row := range rows {
		if err := row.Validate(); err != nil {
			return "", fmt.Errorf("invalid report row %d: %w", i, err)
		}
	}

	id := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO reports (id, created_at, row_count) VALUES (?, ?, ?)
	`, id, formatTime(s.now()), len(rows)); err != nil {
		return "", fmt.Errorf("failed to insert report: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO report_rows (report_id, position, team, side, name, matched_name, score)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, id, i, row.Team, row.Side, row.Name, row.MatchedName, row.Score); err != nil {
			return "", fmt.Errorf("failed to insert report row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit report: %w", err)
	}
	return id, nil
}

// GetReport returns the rows of a stored report in their saved order
func (s *SQLiteStorage) GetReport(ctx context.Context, id string) (*types.ReportSummary, []types.DuplicateRow, error) {
	summary, err := s.getReportSummary(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT team, side, name, matched_name, score
		FROM report_rows
		WHERE report_id = ?
		ORDER BY position
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query report rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]types.DuplicateRow, 0, summary.RowCount)
	for rows.Next() {
		var row types.DuplicateRow
		if err := rows.Scan(&row.Team, &row.Side, &row.Name, &row.MatchedName, &row.Score); err != nil {
			return nil, nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate report rows: %w", err)
	}
	return summary, result, nil
}

func (s *SQLiteStorage) getReportSummary(ctx context.Context, id string) (*types.ReportSummary, error) {
	var (
		summary   types.ReportSummary
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, row_count FROM reports WHERE id = ?
	`, id).Scan(&summary.ID, &createdAt, &summary.RowCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report %s: %w", id, err)
	}
	if summary.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &summary, nil
}

// ListReports returns stored reports, newest first
func (s *SQLiteStorage) ListReports(ctx context.Context, limit int) ([]types.ReportSummary, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, row_count
		FROM reports
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []types.ReportSummary
	for rows.Next() {
		var (
			summary   types.ReportSummary
			createdAt string
		)
		if err := rows.Scan(&summary.ID, &createdAt, &summary.RowCount); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		if summary.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return summaries, nil
}

// LatestReportID returns the ID of the newest report, or ErrNotFound
func (s *SQLiteStorage) LatestReportID(ctx context.Context) (string, error) {
	summaries, err := s.ListReports(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(summaries) == 0 {
		return "", fmt.Errorf("no reports: %w", ErrNotFound)
	}
	return summaries[0].ID, nil
}

// CleanupReports deletes reports created before now-olderThan, always
// keeping the keep most recent ones. Returns the number of reports deleted.
func (s *SQLiteStorage) CleanupReports(ctx context.Context, olderThan time.Duration, keep int) (int, error) {
	if olderThan < 0 {
		return 0, fmt.Errorf("olderThan cannot be negative (got %v)", olderThan)
	}
	if keep < 0 {
		return 0, fmt.Errorf("keep cannot be negative (got %d)", keep)
	}
	cutoff := formatTime(s.now().Add(-olderThan))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Candidates are old reports outside the keep most recent
	const candidates = `
		SELECT id FROM reports
		WHERE created_at < ?
		  AND id NOT IN (
			SELECT id FROM reports ORDER BY created_at DESC, rowid DESC LIMIT ?
		  )
	`
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM report_rows WHERE report_id IN (`+candidates+`)`, cutoff, keep); err != nil {
		return 0, fmt.Errorf("failed to delete report rows: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM reports WHERE id IN (`+candidates+`)`, cutoff, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reports: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit cleanup: %w", err)
	}
	return int(deleted), nil
}
