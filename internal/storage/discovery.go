package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// ProjectDirName is the per-tournament directory holding the database
	// and config file
	ProjectDirName = ".mocktab"

	// DefaultDatabasePath is used when no --db flag or MOCKTAB_DB_PATH is given
	DefaultDatabasePath = ProjectDirName + "/mocktab.db"
)

// DiscoverDatabase looks for .mocktab/*.db in the current directory only.
// Returns the absolute path to the database file, or an error if not found.
//
// MOCKTAB_DB_PATH is checked first and used as-is, so ":memory:" works too.
func DiscoverDatabase() (string, error) {
	if dbPath := os.Getenv("MOCKTAB_DB_PATH"); dbPath != "" {
		return dbPath, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return discoverDatabaseInDir(dir)
}

// discoverDatabaseInDir checks for .mocktab/*.db in the specified directory.
// Parent directories are not searched.
func discoverDatabaseInDir(dir string) (string, error) {
	projectDir := filepath.Join(dir, ProjectDirName)

	if info, err := os.Stat(projectDir); err == nil && info.IsDir() {
		entries, err := os.ReadDir(projectDir)
		if err == nil {
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".db") {
					absPath, err := filepath.Abs(filepath.Join(projectDir, entry.Name()))
					if err != nil {
						return "", fmt.Errorf("failed to get absolute path: %w", err)
					}
					return absPath, nil
				}
			}
		}
	}

	return "", fmt.Errorf(
		"no %s/*.db found in %s\n"+
			"  Run 'mocktab init' to set up a tournament in this directory\n"+
			"  Or use --db flag to specify database path explicitly",
		ProjectDirName, dir)
}

// GetProjectRoot returns the directory containing the .mocktab/ directory
// that holds dbPath.
//
// Example:
//
//	dbPath: /home/user/regionals/.mocktab/mocktab.db
//	returns: /home/user/regionals
func GetProjectRoot(dbPath string) (string, error) {
	absPath, err := filepath.Abs(dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	dbDir := filepath.Dir(absPath)
	if filepath.Base(dbDir) != ProjectDirName {
		return "", fmt.Errorf("database must be in a %s/ directory, got: %s", ProjectDirName, dbPath)
	}
	return filepath.Dir(dbDir), nil
}

// InitProject creates the .mocktab directory in projectDir and returns the
// path the database should be created at. It fails if a database with that
// name already exists.
func InitProject(projectDir, dbName string) (string, error) {
	if _, err := os.Stat(projectDir); os.IsNotExist(err) {
		return "", fmt.Errorf("project directory does not exist: %s", projectDir)
	}

	dir := filepath.Join(projectDir, ProjectDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s directory: %w", ProjectDirName, err)
	}

	if dbName == "" {
		dbName = "mocktab"
	}
	if !strings.HasSuffix(dbName, ".db") {
		dbName += ".db"
	}

	dbPath := filepath.Join(dir, dbName)
	if _, err := os.Stat(dbPath); err == nil {
		return "", fmt.Errorf("database already exists: %s", dbPath)
	}

	// Database will be created on first connection
	return dbPath, nil
}
