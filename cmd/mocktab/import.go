package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/mocktab/internal/ranking"
	"github.com/steveyegge/mocktab/internal/storage"
	"github.com/steveyegge/mocktab/internal/types"
)

var importCmd = &cobra.Command{
	Use:   "import <rankings.csv>",
	Short: "Replace the stored ballot rankings with a CSV export",
	Long: `Read a ranking export and replace the stored rankings with it.

Columns are taken from rankings.columns in .mocktab/config.yaml (by default
team in column 0, competitor name in column 2, side in column 3). Blank rows
are ignored. A row too short for the layout aborts the import unless
--skip-invalid is given or rankings.skip_invalid_rows is set.

Examples:
  mocktab import rankings.csv
  mocktab import rankings.csv --skip-invalid`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		skip, _ := cmd.Flags().GetBool("skip-invalid")

		f, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		stored, err := importRankings(context.Background(), store, f, cfg.Rankings.Columns,
			skip || cfg.Rankings.SkipInvalidRows)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Imported %d ranking row(s) from %s\n", green("✓"), stored, args[0])
	},
}

// readEntries parses a ranking export into name entries
func readEntries(r io.Reader, layout ranking.Layout, skipInvalid bool) ([]types.NameEntry, error) {
	rows, err := ranking.ReadCSV(r)
	if err != nil {
		return nil, err
	}
	return ranking.ParseRows(rows, layout, skipInvalid)
}

// importRankings parses r and replaces the stored rankings with it
func importRankings(ctx context.Context, s storage.Storage, r io.Reader, layout ranking.Layout, skipInvalid bool) (int, error) {
	entries, err := readEntries(r, layout, skipInvalid)
	if err != nil {
		return 0, err
	}
	return s.ReplaceRankings(ctx, entries)
}

func init() {
	importCmd.Flags().Bool("skip-invalid", false, "Skip rows that are too short instead of failing")
	rootCmd.AddCommand(importCmd)
}
