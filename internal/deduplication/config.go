package deduplication

import (
	"fmt"
	"os"
	"strconv"

	"github.com/steveyegge/mocktab/internal/fuzzy"
)

// Config holds configuration for the name typo detector
type Config struct {
	// MinScore is the minimum similarity (0.0-1.0) for two names to be reported
	// Higher values = fewer, stronger suspects
	// Lower values = more noise at the top of the report
	// Default: 0.33
	MinScore float64 `yaml:"min_score"`

	// GramSize is the n-gram length used by each group's index
	// Default: 2
	GramSize int `yaml:"gram_size"`

	// UseLevenshtein scores candidates by normalized edit distance instead of
	// gram cosine similarity
	// Default: false
	UseLevenshtein bool `yaml:"use_levenshtein"`

	// BothDirections emits a pair once for each name it was found from,
	// i.e. (A, B) and (B, A). When false only the first emission of each
	// unordered pair is kept.
	// Default: true
	BothDirections bool `yaml:"both_directions"`

	// Concurrency is the number of groups scanned in parallel
	// 1 = sequential. Output is identical for any value.
	// Default: 1
	Concurrency int `yaml:"concurrency"`
}

// DefaultConfig returns the default detector configuration
func DefaultConfig() Config {
	index := fuzzy.DefaultConfig()
	return Config{
		MinScore:       index.MinScore, // 0.33
		GramSize:       index.GramSize, // bigrams
		UseLevenshtein: false,
		BothDirections: true,
		Concurrency:    1,
	}
}

// IndexConfig returns the similarity index settings for each group
func (c Config) IndexConfig() fuzzy.Config {
	return fuzzy.Config{
		GramSize:       c.GramSize,
		MinScore:       c.MinScore,
		UseLevenshtein: c.UseLevenshtein,
	}
}

// Validate checks if the configuration has valid values
func (c Config) Validate() error {
	if c.MinScore < 0.0 || c.MinScore > 1.0 {
		return fmt.Errorf("min_score must be between 0.0 and 1.0 (got %.2f)", c.MinScore)
	}
	if c.GramSize < 1 || c.GramSize > 5 {
		return fmt.Errorf("gram_size must be between 1 and 5 (got %d)", c.GramSize)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive (got %d)", c.Concurrency)
	}
	if c.Concurrency > 64 {
		return fmt.Errorf("concurrency too large (got %d, max 64)", c.Concurrency)
	}
	return nil
}

// String returns a human-readable representation of the config
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{MinScore: %.2f, GramSize: %d, Levenshtein: %t, BothDirections: %t, Concurrency: %d}",
		c.MinScore, c.GramSize, c.UseLevenshtein, c.BothDirections, c.Concurrency,
	)
}

// ConfigFromEnv creates a Config from environment variables, falling back to defaults
//
// Environment variables:
//   - MOCKTAB_TYPOS_MIN_SCORE: Minimum similarity (0.0-1.0) to report (default: 0.33)
//   - MOCKTAB_TYPOS_GRAM_SIZE: N-gram length (default: 2)
//   - MOCKTAB_TYPOS_LEVENSHTEIN: Score by edit distance (default: false)
//   - MOCKTAB_TYPOS_BOTH_DIRECTIONS: Report (A, B) and (B, A) (default: true)
//   - MOCKTAB_TYPOS_CONCURRENCY: Groups scanned in parallel (default: 1)
//
// Returns an error if any environment variable has an invalid value.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields of cfg from MOCKTAB_TYPOS_* environment variables
// and validates the result.
func ApplyEnv(cfg *Config) error {
	if err := parseEnvFloat("MOCKTAB_TYPOS_MIN_SCORE", &cfg.MinScore); err != nil {
		return err
	}
	if err := parseEnvInt("MOCKTAB_TYPOS_GRAM_SIZE", &cfg.GramSize); err != nil {
		return err
	}
	if err := parseEnvBool("MOCKTAB_TYPOS_LEVENSHTEIN", &cfg.UseLevenshtein); err != nil {
		return err
	}
	if err := parseEnvBool("MOCKTAB_TYPOS_BOTH_DIRECTIONS", &cfg.BothDirections); err != nil {
		return err
	}
	if err := parseEnvInt("MOCKTAB_TYPOS_CONCURRENCY", &cfg.Concurrency); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration from environment: %w", err)
	}
	return nil
}

// parseEnvFloat parses a float64 from an environment variable
func parseEnvFloat(key string, dest *float64) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvInt parses an int from an environment variable
func parseEnvInt(key string, dest *int) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}

// parseEnvBool parses a bool from an environment variable
func parseEnvBool(key string, dest *bool) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	*dest = parsed
	return nil
}
