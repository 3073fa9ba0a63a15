package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/mocktab/internal/config"
	"github.com/steveyegge/mocktab/internal/storage"
)

var initCmd = &cobra.Command{
	Use:   "init [database-name]",
	Short: "Set up a tournament in the current directory",
	Long: `Create a .mocktab/ directory holding the tournament database and a default
config file.

This creates:
  - .mocktab/<database-name>.db (SQLite database, default mocktab.db)
  - .mocktab/config.yaml (ranking columns, typo thresholds, report retention)

An existing config file is left untouched.

Example:
  cd ~/tournaments/regionals
  mocktab init --name "Regional Mock Trial" --email tab@example.com`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		tournament, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")

		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to get current directory: %v\n", err)
			os.Exit(1)
		}

		dbFile, configFile, err := initTournament(context.Background(), cwd, name, config.TournamentConfig{
			Name:  tournament,
			Email: email,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		fmt.Printf("\n%s Initialized tournament\n\n", green("✓"))
		fmt.Printf("  Database: %s\n", cyan(dbFile))
		fmt.Printf("  Config:   %s\n", cyan(configFile))
		fmt.Println()
		fmt.Printf("%s\n", gray("Next: mocktab import <rankings.csv>"))
	},
}

// initTournament creates the database and, if missing, the config file.
// It returns both paths.
func initTournament(ctx context.Context, dir, dbName string, tournament config.TournamentConfig) (string, string, error) {
	dbFile, err := storage.InitProject(dir, dbName)
	if err != nil {
		return "", "", err
	}

	// Opening the database creates the schema
	db, err := storage.NewStorage(ctx, &storage.Config{Path: dbFile})
	if err != nil {
		return "", "", fmt.Errorf("failed to initialize database: %w", err)
	}
	_ = db.Close()

	configFile := filepath.Join(dir, storage.ProjectDirName, config.FileName)
	if _, err := os.Stat(configFile); errors.Is(err, os.ErrNotExist) {
		project := config.DefaultProject()
		project.Tournament = tournament
		if err := project.Validate(); err != nil {
			return "", "", err
		}
		if err := config.Save(configFile, project); err != nil {
			return "", "", err
		}
	}
	return dbFile, configFile, nil
}

func init() {
	initCmd.Flags().String("name", "", "Tournament name")
	initCmd.Flags().String("email", "", "Tournament contact email")
	rootCmd.AddCommand(initCmd)
}
