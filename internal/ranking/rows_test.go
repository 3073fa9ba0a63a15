package ranking

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/mocktab/internal/deduplication"
	"github.com/steveyegge/mocktab/internal/types"
)

func TestParseRows(t *testing.T) {
	rows := [][]string{
		{"101", "Ballot 1", " Jon Smith ", "P"},
		{"", "", "", ""},
		{"101", "Ballot 2", "John Smith", "P", "extra"},
		{},
		{"102", "Ballot 1", "Ann Lee", " D "},
	}

	entries, err := ParseRows(rows, DefaultLayout(), false)
	require.NoError(t, err)

	assert.Equal(t, []types.NameEntry{
		{Team: "101", Side: "P", CompetitorName: "Jon Smith", Row: 0},
		{Team: "101", Side: "P", CompetitorName: "John Smith", Row: 2},
		{Team: "102", Side: "D", CompetitorName: "Ann Lee", Row: 4},
	}, entries)
}

func TestParseRowsShortRow(t *testing.T) {
	rows := [][]string{
		{"101", "Ballot 1", "Jon Smith", "P"},
		{"101", "Ballot 2", "John Smith"},
	}

	t.Run("strict", func(t *testing.T) {
		entries, err := ParseRows(rows, DefaultLayout(), false)
		assert.Nil(t, entries)
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrInvalidInputRow))

		var rowErr *types.InvalidRowError
		require.True(t, errors.As(err, &rowErr))
		assert.Equal(t, 1, rowErr.Row)
		assert.Equal(t, 3, rowErr.Width)
		assert.Equal(t, 4, rowErr.Needed)
	})

	t.Run("skip invalid", func(t *testing.T) {
		entries, err := ParseRows(rows, DefaultLayout(), true)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Jon Smith", entries[0].CompetitorName)
	})
}

func TestParseRowsCustomLayout(t *testing.T) {
	layout := Layout{TeamColumn: 2, NameColumn: 0, SideColumn: 1}
	entries, err := ParseRows([][]string{{"Jon Smith", "D", "7"}}, layout, false)
	require.NoError(t, err)
	assert.Equal(t, []types.NameEntry{{Team: "7", Side: "D", CompetitorName: "Jon Smith", Row: 0}}, entries)
}

func TestLayoutValidate(t *testing.T) {
	assert.NoError(t, DefaultLayout().Validate())
	assert.Equal(t, 4, DefaultLayout().Width())

	assert.ErrorContains(t, Layout{TeamColumn: -1, NameColumn: 1, SideColumn: 2}.Validate(), "cannot be negative")
	assert.ErrorContains(t, Layout{TeamColumn: 1, NameColumn: 1, SideColumn: 2}.Validate(), "must be distinct")

	_, err := ParseRows(nil, Layout{}, false)
	assert.ErrorContains(t, err, "invalid layout")
}

func TestReadCSV(t *testing.T) {
	input := "101,Ballot 1,Jon Smith,P\n101, Ballot 2,\"Smith, John\",P\n\n102,short\n"

	rows, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"101", "Ballot 1", "Jon Smith", "P"},
		{"101", "Ballot 2", "Smith, John", "P"},
		{"102", "short"},
	}, rows)
}

func TestReadCSVMalformed(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("101,\"unterminated\n"))
	assert.ErrorContains(t, err, "failed to read CSV")
}

func TestWriteReportCSV(t *testing.T) {
	report := &deduplication.Report{Rows: []types.DuplicateRow{
		{Team: "101", Side: "P", Name: "Jon Smith", MatchedName: "Smith, John", Score: 0.5},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteReportCSV(&buf, report))
	assert.Equal(t, "team,side,name,matched_name,score\n101,P,Jon Smith,\"Smith, John\",0.500\n", buf.String())
}
