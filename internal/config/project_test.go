package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/mocktab/internal/deduplication"
	"github.com/steveyegge/mocktab/internal/ranking"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"MOCKTAB_DB_PATH",
		"MOCKTAB_TYPOS_MIN_SCORE",
		"MOCKTAB_TYPOS_GRAM_SIZE",
		"MOCKTAB_TYPOS_LEVENSHTEIN",
		"MOCKTAB_TYPOS_BOTH_DIRECTIONS",
		"MOCKTAB_TYPOS_CONCURRENCY",
		"MOCKTAB_REPORT_CLEANUP_AGE_HOURS",
		"MOCKTAB_REPORT_CLEANUP_KEEP",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, DefaultProject(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
tournament:
  name: Regional Mock Trial
  email: tab@example.com
rankings:
  columns:
    team: 1
    name: 4
    side: 5
typos:
  min_score: 0.5
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Regional Mock Trial", cfg.Tournament.Name)
	assert.Equal(t, ranking.Layout{TeamColumn: 1, NameColumn: 4, SideColumn: 5}, cfg.Rankings.Columns)
	assert.Equal(t, 0.5, cfg.Typos.MinScore)

	// Untouched keys keep their defaults
	defaults := deduplication.DefaultConfig()
	assert.Equal(t, defaults.GramSize, cfg.Typos.GramSize)
	assert.True(t, cfg.Typos.BothDirections)
	assert.Equal(t, DefaultReportCleanupConfig(), cfg.Reports)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
database: from-file.db
typos:
  min_score: 0.5
  concurrency: 2
reports:
  cleanup_keep: 3
`)
	t.Setenv("MOCKTAB_DB_PATH", ":memory:")
	t.Setenv("MOCKTAB_TYPOS_MIN_SCORE", "0.7")
	t.Setenv("MOCKTAB_REPORT_CLEANUP_KEEP", "4")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.Database)
	assert.Equal(t, 0.7, cfg.Typos.MinScore)
	assert.Equal(t, 2, cfg.Typos.Concurrency)
	assert.Equal(t, 4, cfg.Reports.CleanupKeep)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "malformed yaml",
			content: "typos: [",
			wantErr: "parsing YAML",
		},
		{
			name:    "min score out of range",
			content: "typos:\n  min_score: 1.5\n",
			wantErr: "min_score must be between 0.0 and 1.0",
		},
		{
			name:    "bad email",
			content: "tournament:\n  email: nobody\n",
			wantErr: "tournament.email",
		},
		{
			name:    "bad retention",
			content: "reports:\n  cleanup_keep: -2\n",
			wantErr: "cleanup_keep must be between 0 and 1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)

	cfg := DefaultProject()
	cfg.Tournament.Name = "State Finals"
	cfg.Typos.UseLevenshtein = true
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestProjectString(t *testing.T) {
	s := DefaultProject().String()
	assert.Contains(t, s, "MinScore: 0.33")
	assert.Contains(t, s, "CleanupKeep: 10")
}
