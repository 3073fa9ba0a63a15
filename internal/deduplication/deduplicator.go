package deduplication

import (
	"context"
	"fmt"

	"github.com/steveyegge/mocktab/internal/types"
)

// Detector finds competitor names that are likely misspellings of each other.
//
// Example usage:
//
//	detector, err := NewNameTypoDetector(DefaultConfig())
//	if err != nil {
//	    return fmt.Errorf("failed to create detector: %w", err)
//	}
//
//	report, err := detector.Detect(ctx, entries)
//	if err != nil {
//	    return err
//	}
//	for _, row := range report.Rows {
//	    fmt.Println(strings.Join(row.Values(), "\t"))
//	}
type Detector interface {
	// Detect compares every distinct name against the other names in its
	// (team, side) group and returns the suspected typos, weakest match first.
	//
	// Returns:
	// - Report with zero rows if no group has two similar names
	// - Error only if the context is cancelled or the configuration is unusable
	Detect(ctx context.Context, entries []types.NameEntry) (*Report, error)
}

// Report is the ranked output of a detection run
type Report struct {
	// Rows are sorted ascending by score. Rows with equal scores keep the
	// order they were found in.
	Rows []types.DuplicateRow `json:"rows"`

	// Statistics about the run
	Stats ReportStats `json:"stats"`
}

// ReportStats provides metrics about a detection run
type ReportStats struct {
	// TotalEntries is the number of input rows
	TotalEntries int `json:"total_entries"`

	// GroupCount is the number of (team, side) groups
	GroupCount int `json:"group_count"`

	// DistinctNames is the number of distinct normalized names across groups
	DistinctNames int `json:"distinct_names"`

	// QueriesMade is the number of index lookups (one per distinct name)
	QueriesMade int `json:"queries_made"`

	// RowsEmitted is the number of report rows
	RowsEmitted int `json:"rows_emitted"`

	// SuppressedMirrors counts (B, A) rows dropped because (A, B) was already
	// reported. Always zero when BothDirections is set.
	SuppressedMirrors int `json:"suppressed_mirrors"`

	// ProcessingTimeMs is the time taken for detection in milliseconds
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// Values renders the rows in output column order with formatted scores
func (r *Report) Values() [][]string {
	values := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		values[i] = row.Values()
	}
	return values
}

// Validate checks that the report is internally consistent
func (r *Report) Validate() error {
	if r.Stats.RowsEmitted != len(r.Rows) {
		return fmt.Errorf("stats.rows_emitted (%d) does not match rows length (%d)",
			r.Stats.RowsEmitted, len(r.Rows))
	}
	if r.Stats.QueriesMade != r.Stats.DistinctNames {
		return fmt.Errorf("stats.queries_made (%d) does not match stats.distinct_names (%d)",
			r.Stats.QueriesMade, r.Stats.DistinctNames)
	}
	if r.Stats.GroupCount > r.Stats.TotalEntries {
		return fmt.Errorf("stats.group_count (%d) exceeds stats.total_entries (%d)",
			r.Stats.GroupCount, r.Stats.TotalEntries)
	}

	for i, row := range r.Rows {
		if err := row.Validate(); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		if i > 0 && row.Score < r.Rows[i-1].Score {
			return fmt.Errorf("rows not sorted: row %d score %.3f follows %.3f",
				i, row.Score, r.Rows[i-1].Score)
		}
	}
	return nil
}
