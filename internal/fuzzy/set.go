// Package fuzzy implements an n-gram similarity index for short strings
// such as competitor names.
//
// Names are normalized, padded and split into overlapping grams. Each gram
// maps to the entries containing it, so a query only scores entries that
// share at least one gram with it. Scores are symmetric, 1.0 for identical
// normalized names, and fall as gram overlap falls.
package fuzzy

import (
	"fmt"
	"math"
	"sort"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MatchResult is one candidate returned by a query
type MatchResult struct {
	Candidate string  `json:"candidate"`
	Score     float64 `json:"score"`
}

type entry struct {
	value      string // first spelling inserted
	normalized string
	grams      map[string]int
	sumSquares int
}

type posting struct {
	entry int
	count int
}

// Set stores distinct names and answers approximate lookups against them.
// A Set is not safe for concurrent mutation; once populated, concurrent
// Get calls are safe.
type Set struct {
	config  Config
	entries []entry
	exact   map[string]int // normalized value -> entry index
	grams   map[string][]posting
}

// New creates an empty set
func New(config Config) (*Set, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Set{
		config: config,
		exact:  make(map[string]int),
		grams:  make(map[string][]posting),
	}, nil
}

// Config returns the configuration the set was built with
func (s *Set) Config() Config {
	return s.config
}

// Add inserts value and reports whether a new entry was created. Values that
// normalize to the empty string are ignored, as are values whose normalized
// form is already present.
func (s *Set) Add(value string) bool {
	normalized := Normalize(value)
	if normalized == "" {
		return false
	}
	if _, exists := s.exact[normalized]; exists {
		return false
	}

	e := newEntry(value, normalized, s.config.GramSize)
	idx := len(s.entries)
	s.entries = append(s.entries, e)
	s.exact[normalized] = idx
	for gram, count := range e.grams {
		s.grams[gram] = append(s.grams[gram], posting{entry: idx, count: count})
	}
	return true
}

// Get returns every entry scoring at least config.MinScore against value,
// best first. Entries with equal scores keep insertion order.
func (s *Set) Get(value string) []MatchResult {
	query := newEntry(value, Normalize(value), s.config.GramSize)
	if query.normalized == "" || len(s.entries) == 0 {
		return []MatchResult{}
	}

	// Dot products against every entry sharing a gram with the query.
	dots := make(map[int]int)
	for gram, count := range query.grams {
		for _, p := range s.grams[gram] {
			dots[p.entry] += count * p.count
		}
	}

	candidates := make([]int, 0, len(dots))
	for idx := range dots {
		candidates = append(candidates, idx)
	}
	sort.Ints(candidates)

	results := make([]MatchResult, 0, len(candidates))
	for _, idx := range candidates {
		e := &s.entries[idx]
		var score float64
		if s.config.UseLevenshtein {
			score = editScore(query.normalized, e.normalized)
		} else {
			score = cosine(query.normalized, e.normalized, dots[idx], query.sumSquares, e.sumSquares)
		}
		if score < s.config.MinScore {
			continue
		}
		results = append(results, MatchResult{Candidate: e.value, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Score returns the similarity of a and b under the set's configuration
func (s *Set) Score(a, b string) float64 {
	return Similarity(a, b, s.config)
}

// Len returns the number of distinct entries
func (s *Set) Len() int {
	return len(s.entries)
}

// Values returns the entry representatives in insertion order
func (s *Set) Values() []string {
	values := make([]string, len(s.entries))
	for i, e := range s.entries {
		values[i] = e.value
	}
	return values
}

// Canonical returns the representative stored for value's normalized form
func (s *Set) Canonical(value string) (string, bool) {
	idx, ok := s.exact[Normalize(value)]
	if !ok {
		return "", false
	}
	return s.entries[idx].value, true
}

// Similarity scores two names without building an index. The result is
// symmetric and exactly 1.0 when both names normalize to the same
// non-empty string.
func Similarity(a, b string, config Config) float64 {
	ea := newEntry(a, Normalize(a), config.GramSize)
	eb := newEntry(b, Normalize(b), config.GramSize)
	if ea.normalized == "" || eb.normalized == "" {
		return 0.0
	}
	if config.UseLevenshtein {
		return editScore(ea.normalized, eb.normalized)
	}
	dot := 0
	for gram, count := range ea.grams {
		dot += count * eb.grams[gram]
	}
	return cosine(ea.normalized, eb.normalized, dot, ea.sumSquares, eb.sumSquares)
}

func newEntry(value, normalized string, gramSize int) entry {
	grams := Grams(normalized, gramSize)
	sumSquares := 0
	for _, count := range grams {
		sumSquares += count * count
	}
	return entry{
		value:      value,
		normalized: normalized,
		grams:      grams,
		sumSquares: sumSquares,
	}
}

// belowOne is the highest score a non-identical pair can get
var belowOne = math.Nextafter(1.0, 0.0)

// cosine works on integer gram counts so the result does not depend on
// argument order. Different names with the same gram multiset ("abaa" and
// "aaba") score just under 1.0; only identical names score 1.0.
func cosine(a, b string, dot, sumSquaresA, sumSquaresB int) float64 {
	if a == b {
		return 1.0
	}
	if dot == 0 || sumSquaresA == 0 || sumSquaresB == 0 {
		return 0.0
	}
	return math.Min(belowOne, float64(dot)/math.Sqrt(float64(sumSquaresA*sumSquaresB)))
}

func editScore(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 0.0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return math.Max(0.0, 1.0-float64(distance)/float64(longest))
}
