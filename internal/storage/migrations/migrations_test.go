package migrations

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// Example migration for testing
var exampleMigration = Migration{
	Version:     1,
	Description: "Add example test table",
	Up: `
		CREATE TABLE IF NOT EXISTS test_table (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		)
	`,
	Down: `
		DROP TABLE IF EXISTS test_table
	`,
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "migrations.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteMigrations(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	manager := NewManager(exampleMigration)

	applied, err := manager.Apply(ctx, db)
	if err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	if applied != 1 {
		t.Errorf("expected 1 migration applied, got %d", applied)
	}

	// Verify version table exists
	var version int
	err = db.QueryRow("SELECT version FROM schema_version WHERE version = 1").Scan(&version)
	if err != nil {
		t.Fatalf("version record not found: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1, got %d", version)
	}

	// Verify test table exists
	_, err = db.Exec("INSERT INTO test_table (id, name) VALUES (1, 'test')")
	if err != nil {
		t.Fatalf("test table not created: %v", err)
	}

	// Applying again is a no-op
	applied, err = manager.Apply(ctx, db)
	if err != nil {
		t.Fatalf("failed to re-apply migrations: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations applied on second run, got %d", applied)
	}

	// Test rollback
	if err := manager.Rollback(ctx, db); err != nil {
		t.Fatalf("failed to rollback migration: %v", err)
	}

	// Verify version table is empty
	err = db.QueryRow("SELECT version FROM schema_version WHERE version = 1").Scan(&version)
	if err != sql.ErrNoRows {
		t.Errorf("expected version record to be removed")
	}

	// Verify test table is dropped
	_, err = db.Exec("INSERT INTO test_table (id, name) VALUES (1, 'test')")
	if err == nil {
		t.Error("test table should have been dropped")
	}

	// Nothing left to roll back
	if err := manager.Rollback(ctx, db); err == nil {
		t.Error("expected error rolling back an empty schema")
	}
}

func TestMigrationOrdering(t *testing.T) {
	manager := NewManager()

	// Register migrations out of order
	manager.Register(Migration{Version: 3, Description: "Third"})
	manager.Register(Migration{Version: 1, Description: "First"})
	manager.Register(Migration{Version: 2, Description: "Second"})

	if manager.Latest() != 3 {
		t.Errorf("expected latest version 3, got %d", manager.Latest())
	}

	manager.sortMigrations()

	if len(manager.migrations) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(manager.migrations))
	}
	for i, want := range []int{1, 2, 3} {
		if manager.migrations[i].Version != want {
			t.Errorf("expected migration %d to be version %d, got %d", i, want, manager.migrations[i].Version)
		}
	}
}

func TestApplyStopsOnBrokenMigration(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	manager := NewManager(
		exampleMigration,
		Migration{Version: 2, Description: "Broken", Up: "CREATE TABLE"},
	)

	applied, err := manager.Apply(ctx, db)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if applied != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", applied)
	}

	version, err := Version(ctx, db)
	if err != nil {
		t.Fatalf("failed to read version: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1 after failed migration, got %d", version)
	}
}
