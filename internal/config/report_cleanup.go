package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ReportCleanupConfig holds retention settings for stored typo reports
type ReportCleanupConfig struct {
	// CleanupAgeHours is how old a report must be before deletion (in hours)
	// Default: 168, Range: 0-8760 (0-365 days)
	// 0 = every report outside CleanupKeep is old enough
	CleanupAgeHours int `yaml:"cleanup_age_hours"`

	// CleanupKeep is the number of most recent reports never deleted
	// Default: 10, Range: 0-1000
	CleanupKeep int `yaml:"cleanup_keep"`
}

// DefaultReportCleanupConfig returns the default report retention: a week of
// reports, and never fewer than the last 10 runs.
func DefaultReportCleanupConfig() ReportCleanupConfig {
	return ReportCleanupConfig{
		CleanupAgeHours: 168,
		CleanupKeep:     10,
	}
}

// Validate checks if the configuration has valid values
func (c ReportCleanupConfig) Validate() error {
	if c.CleanupAgeHours < 0 || c.CleanupAgeHours > 8760 {
		return fmt.Errorf("cleanup_age_hours must be between 0 and 8760 (got %d)", c.CleanupAgeHours)
	}
	if c.CleanupKeep < 0 || c.CleanupKeep > 1000 {
		return fmt.Errorf("cleanup_keep must be between 0 and 1000 (got %d)", c.CleanupKeep)
	}
	return nil
}

// String returns a human-readable representation of the config
func (c ReportCleanupConfig) String() string {
	return fmt.Sprintf(
		"ReportCleanupConfig{CleanupAgeHours: %d, CleanupKeep: %d}",
		c.CleanupAgeHours, c.CleanupKeep,
	)
}

// CleanupAge returns the age threshold as a time.Duration
func (c ReportCleanupConfig) CleanupAge() time.Duration {
	return time.Duration(c.CleanupAgeHours) * time.Hour
}

// ReportCleanupConfigFromEnv creates a ReportCleanupConfig from environment
// variables, falling back to defaults.
//
// Environment variables:
//   - MOCKTAB_REPORT_CLEANUP_AGE_HOURS: How old reports must be before deletion (default: 168)
//   - MOCKTAB_REPORT_CLEANUP_KEEP: Most recent reports to keep (default: 10)
//
// Returns an error if any environment variable has an invalid value.
func ReportCleanupConfigFromEnv() (ReportCleanupConfig, error) {
	cfg := DefaultReportCleanupConfig()
	if err := applyReportCleanupEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyReportCleanupEnv(cfg *ReportCleanupConfig) error {
	if err := parseEnvInt("MOCKTAB_REPORT_CLEANUP_AGE_HOURS", &cfg.CleanupAgeHours); err != nil {
		return err
	}
	if err := parseEnvInt("MOCKTAB_REPORT_CLEANUP_KEEP", &cfg.CleanupKeep); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid report cleanup configuration from environment: %w", err)
	}
	return nil
}

// parseEnvInt parses an integer from an environment variable
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

// parseEnvString parses a string from an environment variable
func parseEnvString(key string, dest *string) error {
	value := os.Getenv(key)
	if value == "" {
		return nil // Use default
	}
	*dest = value
	return nil
}
