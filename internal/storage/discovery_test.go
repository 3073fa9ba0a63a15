package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/mocktab/internal/types"
)

// TestDiscoverDatabaseInDir_CurrentDirOnly verifies that discovery only
// checks the given directory and does not walk up the tree.
func TestDiscoverDatabaseInDir_CurrentDirOnly(t *testing.T) {
	tmpRoot := t.TempDir()
	parentDir := filepath.Join(tmpRoot, "parent")
	childDir := filepath.Join(parentDir, "child")

	parentProjectDir := filepath.Join(parentDir, ProjectDirName)
	require.NoError(t, os.MkdirAll(parentProjectDir, 0755))
	parentDB := filepath.Join(parentProjectDir, "parent.db")
	require.NoError(t, os.WriteFile(parentDB, []byte(""), 0644))
	require.NoError(t, os.MkdirAll(childDir, 0755))

	_, err := discoverDatabaseInDir(childDir)
	assert.Error(t, err, "child directory has no database of its own")

	dbPath, err := discoverDatabaseInDir(parentDir)
	require.NoError(t, err)
	assert.Equal(t, parentDB, dbPath)
}

func TestDiscoverDatabaseInDir_Missing(t *testing.T) {
	tests := []struct {
		name  string
		setup func(dir string) error
	}{
		{
			name:  "no project dir",
			setup: func(string) error { return nil },
		},
		{
			name: "empty project dir",
			setup: func(dir string) error {
				return os.MkdirAll(filepath.Join(dir, ProjectDirName), 0755)
			},
		},
		{
			name: "only non-db files",
			setup: func(dir string) error {
				projectDir := filepath.Join(dir, ProjectDirName)
				if err := os.MkdirAll(projectDir, 0755); err != nil {
					return err
				}
				return os.WriteFile(filepath.Join(projectDir, "config.yaml"), []byte(""), 0644)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, tt.setup(dir))

			_, err := discoverDatabaseInDir(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "mocktab init")
		})
	}
}

func TestDiscoverDatabase_WithEnvVar(t *testing.T) {
	t.Setenv("MOCKTAB_DB_PATH", ":memory:")

	dbPath, err := DiscoverDatabase()
	require.NoError(t, err)
	assert.Equal(t, ":memory:", dbPath)
}

func TestDefaultConfig_WithEnvVar(t *testing.T) {
	t.Setenv("MOCKTAB_DB_PATH", "")
	assert.Equal(t, DefaultDatabasePath, DefaultConfig().Path)

	t.Setenv("MOCKTAB_DB_PATH", "/tmp/regionals.db")
	assert.Equal(t, "/tmp/regionals.db", DefaultConfig().Path)
}

func TestGetProjectRoot(t *testing.T) {
	root, err := GetProjectRoot("/home/user/regionals/.mocktab/mocktab.db")
	require.NoError(t, err)
	assert.Equal(t, "/home/user/regionals", root)

	_, err = GetProjectRoot("/home/user/regionals/mocktab.db")
	assert.Error(t, err)
}

func TestInitProject(t *testing.T) {
	dir := t.TempDir()

	dbPath, err := InitProject(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ProjectDirName, "mocktab.db"), dbPath)

	// Create the database, then a second init must refuse to overwrite it
	store, err := NewStorage(context.Background(), &Config{Path: dbPath})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = InitProject(dir, "mocktab")
	assert.ErrorContains(t, err, "database already exists")

	_, err = InitProject(filepath.Join(dir, "missing"), "")
	assert.ErrorContains(t, err, "project directory does not exist")
}

func TestNewStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewStorage(ctx, &Config{Path: ":memory:"})
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, err = store.GetTeam(ctx, "404")
	assert.ErrorIs(t, err, ErrNotFound)

	id, err := store.SaveReport(ctx, []types.DuplicateRow{
		{Team: "1", Side: "P", Name: "Jon Smith", MatchedName: "Jon Smyth", Score: 0.8},
	})
	require.NoError(t, err)

	latest, err := store.LatestReportID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, latest)
}
