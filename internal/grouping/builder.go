// Package grouping partitions ranking entries by team and side, giving each
// partition its own similarity index.
package grouping

import (
	"fmt"

	"github.com/steveyegge/mocktab/internal/fuzzy"
	"github.com/steveyegge/mocktab/internal/types"
)

// Group holds the names seen for one team and side
type Group struct {
	Key   types.GroupKey
	Index *fuzzy.Set

	// Rows maps each distinct name (its representative spelling) to the
	// source rows that listed it, in input order.
	Rows map[string][]int
}

// RowsFor returns the source rows for name, matching by normalized form
func (g *Group) RowsFor(name string) []int {
	canonical, ok := g.Index.Canonical(name)
	if !ok {
		return nil
	}
	return g.Rows[canonical]
}

// Names returns the group's distinct names in insertion order
func (g *Group) Names() []string {
	return g.Index.Values()
}

// Groups is the result of Build, iterable in first-seen order
type Groups struct {
	order []types.GroupKey
	byKey map[types.GroupKey]*Group
}

// Build partitions entries in a single pass. Each entry's name is added to
// its group's index and its row recorded under the name's representative.
// Entries whose names normalize to nothing are skipped.
func Build(entries []types.NameEntry, config fuzzy.Config) (*Groups, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid index config: %w", err)
	}

	groups := &Groups{byKey: make(map[types.GroupKey]*Group)}
	for _, e := range entries {
		key := e.Key()
		group, ok := groups.byKey[key]
		if !ok {
			index, err := fuzzy.New(config)
			if err != nil {
				return nil, fmt.Errorf("failed to create index for %s: %w", key, err)
			}
			group = &Group{Key: key, Index: index, Rows: make(map[string][]int)}
			groups.byKey[key] = group
			groups.order = append(groups.order, key)
		}

		group.Index.Add(e.CompetitorName)
		canonical, ok := group.Index.Canonical(e.CompetitorName)
		if !ok {
			continue
		}
		group.Rows[canonical] = append(group.Rows[canonical], e.Row)
	}
	return groups, nil
}

// Keys returns the group keys in the order they were first seen
func (g *Groups) Keys() []types.GroupKey {
	keys := make([]types.GroupKey, len(g.order))
	copy(keys, g.order)
	return keys
}

// Get returns the group for key
func (g *Groups) Get(key types.GroupKey) (*Group, bool) {
	group, ok := g.byKey[key]
	return group, ok
}

// Len returns the number of groups
func (g *Groups) Len() int {
	return len(g.order)
}

// DistinctNames returns the total number of distinct names across groups
func (g *Groups) DistinctNames() int {
	total := 0
	for _, group := range g.byKey {
		total += group.Index.Len()
	}
	return total
}
