package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ScorePrecision is the number of fractional digits used when a score is
// rendered for display or export.
const ScorePrecision = 3

// NameEntry is one ranking row: a competitor name listed on a ballot for a
// team and side.
type NameEntry struct {
	Team           string `json:"team"`
	Side           string `json:"side"`
	CompetitorName string `json:"competitor_name"`

	// Row is the position of the source row in the ranking range (0-based).
	// Several rows may carry the same name, one per ballot.
	Row int `json:"row"`
}

// Key returns the group this entry belongs to
func (e NameEntry) Key() GroupKey {
	return GroupKey{Team: e.Team, Side: e.Side}
}

// GroupKey identifies the partition within which names are compared.
// It is a comparable value type, so two keys with the same team and side
// are the same map key.
type GroupKey struct {
	Team string `json:"team"`
	Side string `json:"side"`
}

// String returns a human-readable representation of the key
func (k GroupKey) String() string {
	return fmt.Sprintf("team %s / %s", k.Team, k.Side)
}

// DuplicateRow is one suspected-typo pairing in a report
type DuplicateRow struct {
	Team        string  `json:"team"`
	Side        string  `json:"side"`
	Name        string  `json:"name"`
	MatchedName string  `json:"matched_name"`
	Score       float64 `json:"score"`
}

// Validate checks if the row has valid field values
func (r DuplicateRow) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.MatchedName == "" {
		return fmt.Errorf("matched_name is required")
	}
	if r.Name == r.MatchedName {
		return fmt.Errorf("matched_name must differ from name (both %q)", r.Name)
	}
	if r.Score < 0.0 || r.Score > 1.0 {
		return fmt.Errorf("score must be between 0.0 and 1.0 (got %.3f)", r.Score)
	}
	return nil
}

// Key returns the group the row was found in
func (r DuplicateRow) Key() GroupKey {
	return GroupKey{Team: r.Team, Side: r.Side}
}

// FormattedScore renders the score with ScorePrecision fractional digits
func (r DuplicateRow) FormattedScore() string {
	return strconv.FormatFloat(r.Score, 'f', ScorePrecision, 64)
}

// Values returns the row in output column order:
// team, side, name, matched name, score.
func (r DuplicateRow) Values() []string {
	return []string{r.Team, r.Side, r.Name, r.MatchedName, r.FormattedScore()}
}

// TeamInfo describes a registered team
type TeamInfo struct {
	Number           string    `json:"number"`
	Name             string    `json:"name"`
	School           string    `json:"school,omitempty"`
	Emails           []string  `json:"emails,omitempty"`
	BallotFolderLink string    `json:"ballot_folder_link,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Validate checks if the team has valid field values
func (t *TeamInfo) Validate() error {
	if strings.TrimSpace(t.Number) == "" {
		return fmt.Errorf("number is required")
	}
	if len(t.Name) > 200 {
		return fmt.Errorf("name must be 200 characters or less (got %d)", len(t.Name))
	}
	for _, email := range t.Emails {
		if !strings.Contains(email, "@") {
			return fmt.Errorf("invalid email: %q", email)
		}
	}
	return nil
}

// ErrInvalidInputRow is the sentinel wrapped by InvalidRowError
var ErrInvalidInputRow = errors.New("invalid input row")

// InvalidRowError reports a ranking row that is missing columns the layout
// needs.
type InvalidRowError struct {
	Row    int // 0-based position in the input
	Width  int // number of cells present
	Needed int // number of cells required by the layout
}

func (e *InvalidRowError) Error() string {
	return fmt.Sprintf("%v: row %d has %d cells, need at least %d", ErrInvalidInputRow, e.Row, e.Width, e.Needed)
}

func (e *InvalidRowError) Unwrap() error {
	return ErrInvalidInputRow
}

// ReportSummary describes a stored typo report
type ReportSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	RowCount  int       `json:"row_count"`
}
