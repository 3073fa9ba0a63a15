// Package deduplication detects likely misspellings of competitor names on
// tournament ballots.
//
// # Overview
//
// Ballots list competitor names per team and side. They are typed in by
// hand, so the same person shows up as "Jon Smith" on one ballot and
// "John Smith" on the next. The detector finds those pairs so a tab room
// volunteer can fix them before individual awards are tallied.
//
// # Architecture
//
// Detection runs in three steps:
//
//  1. Grouping (package grouping): entries are partitioned by (team, side).
//     Names are never compared across groups.
//  2. Indexing (package fuzzy): each group gets its own n-gram index holding
//     one entry per distinct normalized name.
//  3. Scanning: every distinct name is looked up in its own group's index.
//     When the lookup returns more than the name itself, one row is emitted
//     per other candidate.
//
// The report is sorted ascending by score so the weakest, most doubtful
// matches are reviewed first. Ties keep the order they were found in.
//
// # Directional Rows
//
// A pair (A, B) is reported once when A is scanned and again, as (B, A),
// when B is scanned. Both rows carry the same score. Set
// Config.BothDirections to false to keep only the first row of each pair;
// the dropped mirrors are counted in ReportStats.SuppressedMirrors.
//
// # Configuration
//
// See DefaultConfig() for full default values:
//   - MinScore: 0.33 (candidates below this are not reported)
//   - GramSize: 2 (padded bigrams)
//   - UseLevenshtein: false (gram cosine similarity)
//   - BothDirections: true
//   - Concurrency: 1
//
// ConfigFromEnv reads MOCKTAB_TYPOS_* overrides.
//
// # Usage Examples
//
//	detector, err := deduplication.NewNameTypoDetector(deduplication.DefaultConfig())
//	if err != nil {
//	    return fmt.Errorf("failed to create detector: %w", err)
//	}
//
//	report, err := detector.Detect(ctx, entries)
//	if err != nil {
//	    return fmt.Errorf("typo detection failed: %w", err)
//	}
//
//	for _, row := range report.Values() {
//	    // team, side, name, matched name, score ("0.858")
//	    fmt.Println(strings.Join(row, ","))
//	}
//
// # Error Handling
//
// Nothing about the input is fatal. Groups with one distinct name, blank
// names and empty input all produce zero rows. Detect only fails on an
// invalid configuration or a cancelled context.
package deduplication
