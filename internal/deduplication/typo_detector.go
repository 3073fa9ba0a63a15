package deduplication

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/steveyegge/mocktab/internal/grouping"
	"github.com/steveyegge/mocktab/internal/types"
)

// NameTypoDetector implements the Detector interface with per-group n-gram
// similarity indexes
type NameTypoDetector struct {
	config Config
}

// Compile-time check that NameTypoDetector implements Detector
var _ Detector = (*NameTypoDetector)(nil)

// NewNameTypoDetector creates a new detector
//
// Returns an error if config validation fails.
func NewNameTypoDetector(config Config) (*NameTypoDetector, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &NameTypoDetector{config: config}, nil
}

// Config returns the detector's configuration
func (d *NameTypoDetector) Config() Config {
	return d.config
}

// groupScan is the partial report for one group
type groupScan struct {
	rows       []types.DuplicateRow
	queries    int
	suppressed int
}

// Detect implements Detector
func (d *NameTypoDetector) Detect(ctx context.Context, entries []types.NameEntry) (*Report, error) {
	start := time.Now()

	groups, err := grouping.Build(entries, d.config.IndexConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to group entries: %w", err)
	}

	keys := groups.Keys()
	scans := make([]groupScan, len(keys))

	if d.config.Concurrency > 1 && len(keys) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(d.config.Concurrency)
		for i, key := range keys {
			i := i
			group, _ := groups.Get(key)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				scans[i] = d.scanGroup(group)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("detection cancelled: %w", err)
		}
	} else {
		for i, key := range keys {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("detection cancelled: %w", err)
			}
			group, _ := groups.Get(key)
			scans[i] = d.scanGroup(group)
		}
	}

	// Join in group order so emission order does not depend on scheduling.
	report := &Report{Rows: []types.DuplicateRow{}}
	for _, scan := range scans {
		report.Rows = append(report.Rows, scan.rows...)
		report.Stats.QueriesMade += scan.queries
		report.Stats.SuppressedMirrors += scan.suppressed
	}

	// Weakest matches first: those are the likeliest false positives.
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Score < report.Rows[j].Score
	})

	report.Stats.TotalEntries = len(entries)
	report.Stats.GroupCount = groups.Len()
	report.Stats.DistinctNames = groups.DistinctNames()
	report.Stats.RowsEmitted = len(report.Rows)
	report.Stats.ProcessingTimeMs = time.Since(start).Milliseconds()

	log.Printf("[TYPOS] Scanned %d entries in %d groups (%d distinct names): %d suspect rows",
		report.Stats.TotalEntries, report.Stats.GroupCount, report.Stats.DistinctNames, report.Stats.RowsEmitted)

	return report, nil
}

// scanGroup queries the group's index with each of its names. The index is
// only read here, so groups can be scanned concurrently.
func (d *NameTypoDetector) scanGroup(group *grouping.Group) groupScan {
	var scan groupScan
	type pair struct{ a, b string }
	var seen map[pair]bool
	if !d.config.BothDirections {
		seen = make(map[pair]bool)
	}

	for _, name := range group.Names() {
		scan.queries++
		matches := group.Index.Get(name)
		// A lone result is the name matching itself.
		if len(matches) <= 1 {
			continue
		}
		for _, m := range matches {
			if m.Candidate == name {
				continue
			}
			if seen != nil {
				if seen[pair{m.Candidate, name}] {
					scan.suppressed++
					continue
				}
				seen[pair{name, m.Candidate}] = true
			}
			scan.rows = append(scan.rows, types.DuplicateRow{
				Team:        group.Key.Team,
				Side:        group.Key.Side,
				Name:        name,
				MatchedName: m.Candidate,
				Score:       m.Score,
			})
		}
	}
	return scan
}
