package storage

import (
	"context"
	"os"
	"time"

	"github.com/steveyegge/mocktab/internal/storage/sqlite"
	"github.com/steveyegge/mocktab/internal/types"
)

// ErrNotFound is returned when a requested team or report does not exist
var ErrNotFound = sqlite.ErrNotFound

// Storage defines the interface for tournament data backends
type Storage interface {
	// Rankings - one row per competitor name listed on a ballot
	ReplaceRankings(ctx context.Context, entries []types.NameEntry) (int, error)
	GetRankings(ctx context.Context) ([]types.NameEntry, error)

	// Teams
	UpsertTeam(ctx context.Context, team *types.TeamInfo) error
	GetTeam(ctx context.Context, number string) (*types.TeamInfo, error)
	ListTeams(ctx context.Context) ([]*types.TeamInfo, error)
	SetTeamBallotFolderLink(ctx context.Context, number, link string) (bool, error)

	// Typo reports
	SaveReport(ctx context.Context, rows []types.DuplicateRow) (string, error)
	GetReport(ctx context.Context, id string) (*types.ReportSummary, []types.DuplicateRow, error)
	ListReports(ctx context.Context, limit int) ([]types.ReportSummary, error)
	LatestReportID(ctx context.Context) (string, error)
	CleanupReports(ctx context.Context, olderThan time.Duration, keep int) (int, error)

	// Lifecycle
	Close() error
}

var _ Storage = (*sqlite.SQLiteStorage)(nil)

// Config holds database configuration
type Config struct {
	// Path is the SQLite database file path
	// Default: ".mocktab/mocktab.db"
	// Special value ":memory:" creates an in-memory database (useful for tests)
	Path string
}

// DefaultConfig returns a config with sensible defaults.
// MOCKTAB_DB_PATH overrides the default path.
func DefaultConfig() *Config {
	path := DefaultDatabasePath
	if env := os.Getenv("MOCKTAB_DB_PATH"); env != "" {
		path = env
	}
	return &Config{Path: path}
}

// NewStorage creates a new SQLite storage backend
func NewStorage(ctx context.Context, cfg *Config) (Storage, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// Default to standard path if not specified
	if cfg.Path == "" {
		cfg.Path = DefaultDatabasePath
	}

	return sqlite.New(ctx, cfg.Path)
}
