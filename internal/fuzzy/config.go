package fuzzy

import "fmt"

// Config holds configuration for a similarity index
type Config struct {
	// GramSize is the length (in runes) of the n-grams names are split into
	// Default: 2 (bigrams over the padded name)
	GramSize int

	// MinScore is the minimum similarity (0.0-1.0) a candidate needs to be returned
	// by a query. An exact match always scores 1.0, so any MinScore <= 1.0
	// keeps the self-match.
	// Default: 0.33
	MinScore float64

	// UseLevenshtein rescores gram-matched candidates by normalized edit distance
	// instead of gram cosine similarity
	// Default: false
	UseLevenshtein bool
}

// DefaultConfig returns the default index configuration
func DefaultConfig() Config {
	return Config{
		GramSize:       2,
		MinScore:       0.33,
		UseLevenshtein: false,
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if c.GramSize < 1 || c.GramSize > 5 {
		return fmt.Errorf("gram_size must be between 1 and 5 (got %d)", c.GramSize)
	}
	if c.MinScore < 0.0 || c.MinScore > 1.0 {
		return fmt.Errorf("min_score must be between 0.0 and 1.0 (got %.2f)", c.MinScore)
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf("Config{GramSize: %d, MinScore: %.2f, Levenshtein: %t}",
		c.GramSize, c.MinScore, c.UseLevenshtein)
}
