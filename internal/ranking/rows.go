// Package ranking turns raw ranking-range rows into name entries and
// renders typo reports for export.
package ranking

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/steveyegge/mocktab/internal/deduplication"
	"github.com/steveyegge/mocktab/internal/types"
)

// Layout gives the column positions (0-based) of the fields the detector uses
type Layout struct {
	TeamColumn int `yaml:"team"`
	NameColumn int `yaml:"name"`
	SideColumn int `yaml:"side"`
}

// DefaultLayout matches the ranking range: team number, ballot, competitor
// name, side.
func DefaultLayout() Layout {
	return Layout{
		TeamColumn: 0,
		NameColumn: 2,
		SideColumn: 3,
	}
}

// Width returns the minimum number of cells a row needs
func (l Layout) Width() int {
	return max(l.TeamColumn, l.NameColumn, l.SideColumn) + 1
}

// Validate checks if the layout has valid values
func (l Layout) Validate() error {
	if l.TeamColumn < 0 || l.NameColumn < 0 || l.SideColumn < 0 {
		return fmt.Errorf("column positions cannot be negative (team=%d, name=%d, side=%d)",
			l.TeamColumn, l.NameColumn, l.SideColumn)
	}
	if l.TeamColumn == l.NameColumn || l.TeamColumn == l.SideColumn || l.NameColumn == l.SideColumn {
		return fmt.Errorf("column positions must be distinct (team=%d, name=%d, side=%d)",
			l.TeamColumn, l.NameColumn, l.SideColumn)
	}
	return nil
}

// ParseRows extracts name entries from rows. Rows whose cells are all blank
// are dropped. A non-blank row too short for the layout is an
// *types.InvalidRowError, unless skipInvalid is set, in which case it is
// logged and skipped. Entry.Row is the row's position in rows.
func ParseRows(rows [][]string, layout Layout, skipInvalid bool) ([]types.NameEntry, error) {
	if err := layout.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	width := layout.Width()
	entries := make([]types.NameEntry, 0, len(rows))
	for i, row := range rows {
		if isBlank(row) {
			continue
		}
		if len(row) < width {
			rowErr := &types.InvalidRowError{Row: i, Width: len(row), Needed: width}
			if skipInvalid {
				log.Printf("[RANKING] Skipping row %d: %v", i, rowErr)
				continue
			}
			return nil, rowErr
		}
		entries = append(entries, types.NameEntry{
			Team:           strings.TrimSpace(row[layout.TeamColumn]),
			Side:           strings.TrimSpace(row[layout.SideColumn]),
			CompetitorName: strings.TrimSpace(row[layout.NameColumn]),
			Row:            i,
		})
	}
	return entries, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ReadCSV reads every record from r. Records may have differing widths;
// width checks are left to ParseRows.
func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// ReportHeader is the header row written by WriteReportCSV
var ReportHeader = []string{"team", "side", "name", "matched_name", "score"}

// WriteReportCSV writes the report rows, preceded by ReportHeader
func WriteReportCSV(w io.Writer, report *deduplication.Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ReportHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(report.Values()); err != nil {
		return fmt.Errorf("failed to write report rows: %w", err)
	}
	return nil
}
