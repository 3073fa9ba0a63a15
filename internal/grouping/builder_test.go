package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/mocktab/internal/fuzzy"
	"github.com/steveyegge/mocktab/internal/types"
)

func entry(row int, team, side, name string) types.NameEntry {
	return types.NameEntry{Team: team, Side: side, CompetitorName: name, Row: row}
}

func TestBuildPartitionsByTeamAndSide(t *testing.T) {
	entries := []types.NameEntry{
		entry(0, "1", "P", "Jon Smith"),
		entry(1, "1", "D", "Ann Lee"),
		entry(2, "1", "P", "John Smith"),
		entry(3, "2", "P", "Jon Smith"),
		entry(4, "1", "P", "jon smith"),
	}

	groups, err := Build(entries, fuzzy.DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 3, groups.Len())
	assert.Equal(t, []types.GroupKey{
		{Team: "1", Side: "P"},
		{Team: "1", Side: "D"},
		{Team: "2", Side: "P"},
	}, groups.Keys())
	assert.Equal(t, 4, groups.DistinctNames())

	plaintiff, ok := groups.Get(types.GroupKey{Team: "1", Side: "P"})
	require.True(t, ok)
	assert.Equal(t, []string{"Jon Smith", "John Smith"}, plaintiff.Names())
	assert.Equal(t, []int{0, 4}, plaintiff.Rows["Jon Smith"])
	assert.Equal(t, []int{2}, plaintiff.Rows["John Smith"])
	assert.Equal(t, []int{0, 4}, plaintiff.RowsFor("JON SMITH"))
	assert.Nil(t, plaintiff.RowsFor("Mary Jones"))

	other, ok := groups.Get(types.GroupKey{Team: "2", Side: "P"})
	require.True(t, ok)
	assert.Equal(t, []string{"Jon Smith"}, other.Names())

	_, ok = groups.Get(types.GroupKey{Team: "3", Side: "P"})
	assert.False(t, ok)
}

func TestBuildDoesNotCompareAcrossGroups(t *testing.T) {
	entries := []types.NameEntry{
		entry(0, "1", "P", "Jon Smith"),
		entry(1, "2", "P", "John Smith"),
	}

	groups, err := Build(entries, fuzzy.DefaultConfig())
	require.NoError(t, err)

	g, _ := groups.Get(types.GroupKey{Team: "1", Side: "P"})
	results := g.Index.Get("John Smith")
	require.Len(t, results, 1)
	assert.Equal(t, "Jon Smith", results[0].Candidate)
}

func TestBuildSkipsBlankNames(t *testing.T) {
	entries := []types.NameEntry{
		entry(0, "1", "P", ""),
		entry(1, "1", "P", "   "),
		entry(2, "1", "P", "Ann Lee"),
	}

	groups, err := Build(entries, fuzzy.DefaultConfig())
	require.NoError(t, err)

	g, ok := groups.Get(types.GroupKey{Team: "1", Side: "P"})
	require.True(t, ok)
	assert.Equal(t, 1, g.Index.Len())
	assert.Len(t, g.Rows, 1)
	assert.Equal(t, []int{2}, g.Rows["Ann Lee"])
}

func TestBuildEmptyInput(t *testing.T) {
	groups, err := Build(nil, fuzzy.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 0, groups.Len())
	assert.Empty(t, groups.Keys())
}

func TestBuildRejectsInvalidConfig(t *testing.T) {
	_, err := Build(nil, fuzzy.Config{GramSize: 9})
	assert.ErrorContains(t, err, "invalid index config")
}
