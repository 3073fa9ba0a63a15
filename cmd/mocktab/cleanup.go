package main

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/mocktab/internal/config"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete old saved typo reports",
	Long: `Delete saved reports according to the retention policy.

A report is deleted when it is older than reports.cleanup_age_hours and is not
one of the reports.cleanup_keep most recent. Settings come from
.mocktab/config.yaml, MOCKTAB_REPORT_CLEANUP_AGE_HOURS and
MOCKTAB_REPORT_CLEANUP_KEEP. Flags override both.

Examples:
  mocktab cleanup                 # Apply configured retention
  mocktab cleanup --keep 3        # Keep only the 3 most recent old reports
  mocktab cleanup --age-hours 0   # Age is no protection, only --keep is`,
	Run: func(cmd *cobra.Command, args []string) {
		retention := cfg.Reports
		if cmd.Flags().Changed("age-hours") {
			retention.CleanupAgeHours, _ = cmd.Flags().GetInt("age-hours")
		}
		if cmd.Flags().Changed("keep") {
			retention.CleanupKeep, _ = cmd.Flags().GetInt("keep")
		}

		deleted, err := cleanupReports(context.Background(), retention)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Deleted %d report(s) (%s)\n", green("✓"), deleted, retention)
	},
}

func cleanupReports(ctx context.Context, retention config.ReportCleanupConfig) (int, error) {
	if err := retention.Validate(); err != nil {
		return 0, fmt.Errorf("invalid retention: %w", err)
	}
	return store.CleanupReports(ctx, retention.CleanupAge(), retention.CleanupKeep)
}

func init() {
	cleanupCmd.Flags().Int("age-hours", 0, "Delete reports older than N hours")
	cleanupCmd.Flags().Int("keep", 0, "Always keep the N most recent reports")
	rootCmd.AddCommand(cleanupCmd)
}
