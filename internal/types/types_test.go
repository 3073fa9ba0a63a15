package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuplicateRowValidate(t *testing.T) {
	tests := []struct {
		name        string
		row         DuplicateRow
		expectError bool
		errorMsg    string
	}{
		{
			name:        "valid row",
			row:         DuplicateRow{Team: "1", Side: "P", Name: "Jon Smith", MatchedName: "John Smith", Score: 0.858},
			expectError: false,
		},
		{
			name:        "self match",
			row:         DuplicateRow{Team: "1", Side: "P", Name: "Jon Smith", MatchedName: "Jon Smith", Score: 1.0},
			expectError: true,
			errorMsg:    "matched_name must differ",
		},
		{
			name:        "missing matched name",
			row:         DuplicateRow{Team: "1", Side: "P", Name: "Jon Smith", Score: 0.5},
			expectError: true,
			errorMsg:    "matched_name is required",
		},
		{
			name:        "score too high",
			row:         DuplicateRow{Name: "a", MatchedName: "b", Score: 1.5},
			expectError: true,
			errorMsg:    "score must be between 0.0 and 1.0",
		},
		{
			name:        "negative score",
			row:         DuplicateRow{Name: "a", MatchedName: "b", Score: -0.1},
			expectError: true,
			errorMsg:    "score must be between 0.0 and 1.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.row.Validate()
			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDuplicateRowValues(t *testing.T) {
	row := DuplicateRow{Team: "12", Side: "D", Name: "Ann Lee", MatchedName: "Anne Lee", Score: 0.85811}

	assert.Equal(t, "0.858", row.FormattedScore())
	assert.Equal(t, []string{"12", "D", "Ann Lee", "Anne Lee", "0.858"}, row.Values())
	assert.Equal(t, GroupKey{Team: "12", Side: "D"}, row.Key())
}

func TestFormattedScorePadsPrecision(t *testing.T) {
	assert.Equal(t, "0.500", DuplicateRow{Score: 0.5}.FormattedScore())
	assert.Equal(t, "1.000", DuplicateRow{Score: 1}.FormattedScore())
	assert.Equal(t, "0.000", DuplicateRow{Score: 0}.FormattedScore())
}

func TestGroupKeyStructuralEquality(t *testing.T) {
	a := NameEntry{Team: "1", Side: "P", CompetitorName: "Jon"}.Key()
	b := NameEntry{Team: "1", Side: "P", CompetitorName: "John", Row: 7}.Key()
	c := NameEntry{Team: "1", Side: "D", CompetitorName: "Jon"}.Key()

	groups := map[GroupKey]int{}
	groups[a]++
	groups[b]++
	groups[c]++

	assert.Equal(t, a, b)
	assert.Len(t, groups, 2)
	assert.Equal(t, 2, groups[GroupKey{Team: "1", Side: "P"}])
	assert.Equal(t, "team 1 / P", a.String())
}

func TestTeamInfoValidate(t *testing.T) {
	valid := &TeamInfo{Number: "101", Name: "Central High A", Emails: []string{"coach@example.com"}}
	assert.NoError(t, valid.Validate())

	missing := &TeamInfo{Name: "No Number"}
	assert.ErrorContains(t, missing.Validate(), "number is required")

	badEmail := &TeamInfo{Number: "102", Emails: []string{"not-an-email"}}
	assert.ErrorContains(t, badEmail.Validate(), "invalid email")
}

func TestInvalidRowErrorUnwraps(t *testing.T) {
	var err error = &InvalidRowError{Row: 4, Width: 2, Needed: 4}

	assert.True(t, errors.Is(err, ErrInvalidInputRow))
	assert.Equal(t, "invalid input row: row 4 has 2 cells, need at least 4", err.Error())

	var rowErr *InvalidRowError
	assert.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 4, rowErr.Row)
}
