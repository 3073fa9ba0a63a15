package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/mocktab/internal/storage"
	"github.com/steveyegge/mocktab/internal/types"
)

var reportCmd = &cobra.Command{
	Use:   "report [report-id]",
	Short: "Show a saved typo report",
	Long: `Print a report saved with 'mocktab typos --save'. Without an ID the most
recent report is shown. Use --list to see saved reports.

Examples:
  mocktab report
  mocktab report 5f0c3e9a-1b2d-4c7e-9f10-2a3b4c5d6e7f
  mocktab report --list`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if list, _ := cmd.Flags().GetBool("list"); list {
			limit, _ := cmd.Flags().GetInt("limit")
			summaries, err := store.ListReports(ctx, limit)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			printReportList(os.Stdout, summaries)
			return
		}

		id := ""
		if len(args) > 0 {
			id = args[0]
		}
		summary, rows, err := loadReport(ctx, store, id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Printf("Report %s (%s)\n\n", cyan(summary.ID), summary.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		printReport(os.Stdout, rows)
	},
}

// loadReport fetches the report with the given ID, or the latest one if id
// is empty
func loadReport(ctx context.Context, s storage.Storage, id string) (*types.ReportSummary, []types.DuplicateRow, error) {
	if id == "" {
		latest, err := s.LatestReportID(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("no saved reports (run 'mocktab typos --save'): %w", err)
		}
		id = latest
	}
	return s.GetReport(ctx, id)
}

func printReportList(w io.Writer, summaries []types.ReportSummary) {
	if len(summaries) == 0 {
		fmt.Fprintln(w, "No saved reports")
		return
	}
	for _, s := range summaries {
		fmt.Fprintf(w, "%s  %s  %d row(s)\n", s.ID, s.CreatedAt.Local().Format("2006-01-02 15:04:05"), s.RowCount)
	}
}

func init() {
	reportCmd.Flags().Bool("list", false, "List saved reports, newest first")
	reportCmd.Flags().Int("limit", 20, "Maximum reports to list (0 = all)")
	rootCmd.AddCommand(reportCmd)
}
