package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/steveyegge/mocktab/internal/config"
	"github.com/steveyegge/mocktab/internal/storage"
)

var (
	dbPath string
	store  storage.Storage
	cfg    *config.Project
)

var rootCmd = &cobra.Command{
	Use:   "mocktab",
	Short: "Tabulation helper for mock trial tournaments",
	Long: `mocktab keeps a tournament's team registry and ballot rankings in a local
SQLite database and checks the rankings for competitor names that look like
misspellings of each other.

Run 'mocktab init' once in the tournament directory, then import the ranking
export and run 'mocktab typos'.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !usesProject(cmd) {
			return
		}
		if err := loadProjectConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if cmd.Annotations[lazyStoreAnnotation] == "true" {
			return
		}
		if err := openStore(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			_ = store.Close()
		}
	},
}

// lazyStoreAnnotation marks commands that call openStore themselves, only
// when they need the database
const lazyStoreAnnotation = "mocktab/lazy-store"

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default: auto-discover .mocktab/*.db)")
}

// usesProject reports whether cmd works against the tournament config and
// database. The root command itself only prints help.
func usesProject(cmd *cobra.Command) bool {
	if !cmd.HasParent() {
		return false
	}
	switch cmd.Name() {
	case "init", "help", "completion":
		return false
	}
	return true
}

// loadProjectConfig reads .mocktab/config.yaml from the current directory,
// falling back to defaults when there is none
func loadProjectConfig() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	loaded, err := config.Load(filepath.Join(cwd, storage.ProjectDirName, config.FileName))
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// openStore opens the database once. The --db flag wins over the config
// file and MOCKTAB_DB_PATH, which win over discovery.
func openStore(ctx context.Context) error {
	if store != nil {
		return nil
	}

	path := dbPath
	if path == "" && cfg != nil {
		path = cfg.Database
	}
	if path == "" {
		var err error
		if path, err = storage.DiscoverDatabase(); err != nil {
			return err
		}
	}

	s, err := storage.NewStorage(ctx, &storage.Config{Path: path})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	store = s
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
