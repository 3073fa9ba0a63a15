package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/mocktab/internal/deduplication"
	"github.com/steveyegge/mocktab/internal/ranking"
	"github.com/steveyegge/mocktab/internal/types"
)

var typosCmd = &cobra.Command{
	Use:   "typos",
	Short: "List competitor names that look like misspellings of each other",
	Long: `Compare every competitor name with the other names listed for the same team
and side, and print the pairs that score at or above the similarity threshold,
weakest match first.

Names come from the stored rankings, or from --input to check an export
without importing it. Flags override the typos section of
.mocktab/config.yaml and MOCKTAB_TYPOS_* environment variables.

Examples:
  mocktab typos
  mocktab typos --min-score 0.5 --one-direction
  mocktab typos --input rankings.csv --output typos.csv
  mocktab typos --levenshtein --save`,
	Annotations: map[string]string{lazyStoreAnnotation: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTypos(context.Background(), cmd, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// runTypos opens the database only when names come from it or the report
// is saved, so --input works outside a tournament directory.
func runTypos(ctx context.Context, cmd *cobra.Command, out io.Writer) error {
	detectCfg, err := typosConfig(cmd, cfg.Typos)
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	save, _ := cmd.Flags().GetBool("save")
	if input == "" || save {
		if err := openStore(ctx); err != nil {
			return err
		}
	}

	entries, err := loadTypoEntries(ctx, cmd)
	if err != nil {
		return err
	}

	report, err := detectTypos(ctx, detectCfg, entries)
	if err != nil {
		return err
	}

	printReport(out, report.Rows)
	gray := color.New(color.FgHiBlack).SprintFunc()
	fmt.Fprintf(out, "%s\n", gray(fmt.Sprintf("%d name(s) in %d group(s), %d suspected typo row(s), %dms",
		report.Stats.DistinctNames, report.Stats.GroupCount, report.Stats.RowsEmitted,
		report.Stats.ProcessingTimeMs)))

	green := color.New(color.FgGreen).SprintFunc()
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		if err := writeReportFile(output, report); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s Wrote %s\n", green("✓"), output)
	}

	if save {
		id, err := store.SaveReport(ctx, report.Rows)
		if err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		fmt.Fprintf(out, "%s Saved report %s\n", green("✓"), id)
	}
	return nil
}

// typosConfig applies the flags the user set on top of base
func typosConfig(cmd *cobra.Command, base deduplication.Config) (deduplication.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("min-score") {
		base.MinScore, _ = flags.GetFloat64("min-score")
	}
	if flags.Changed("gram-size") {
		base.GramSize, _ = flags.GetInt("gram-size")
	}
	if flags.Changed("levenshtein") {
		base.UseLevenshtein, _ = flags.GetBool("levenshtein")
	}
	if flags.Changed("one-direction") {
		oneDirection, _ := flags.GetBool("one-direction")
		base.BothDirections = !oneDirection
	}
	if flags.Changed("concurrency") {
		base.Concurrency, _ = flags.GetInt("concurrency")
	}

	if err := base.Validate(); err != nil {
		return base, fmt.Errorf("invalid typos configuration: %w", err)
	}
	return base, nil
}

func loadTypoEntries(ctx context.Context, cmd *cobra.Command) ([]types.NameEntry, error) {
	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		return store.GetRankings(ctx)
	}

	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	skip, _ := cmd.Flags().GetBool("skip-invalid")
	return readEntries(f, cfg.Rankings.Columns, skip || cfg.Rankings.SkipInvalidRows)
}

func detectTypos(ctx context.Context, detectCfg deduplication.Config, entries []types.NameEntry) (*deduplication.Report, error) {
	detector, err := deduplication.NewNameTypoDetector(detectCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create detector: %w", err)
	}
	return detector.Detect(ctx, entries)
}

func writeReportFile(path string, report *deduplication.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := ranking.WriteReportCSV(f, report); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// printReport writes rows as an aligned table. Scores below 0.5 are shown
// in yellow, higher scores in red.
func printReport(w io.Writer, rows []types.DuplicateRow) {
	if len(rows) == 0 {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(w, "%s No suspected typos\n", green("✓"))
		return
	}

	headers := []string{"TEAM", "SIDE", "NAME", "MATCHED NAME", "SCORE"}
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, v := range row.Values() {
			widths[i] = max(widths[i], utf8.RuneCountInString(v))
		}
	}

	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintln(w, bold(formatCells(headers, widths)))
	for _, row := range rows {
		line := formatCells(row.Values(), widths)
		scoreColor := color.New(color.FgYellow)
		if row.Score >= 0.5 {
			scoreColor = color.New(color.FgRed)
		}
		// Color only the trailing score column
		cut := len(line) - len(row.FormattedScore())
		fmt.Fprintf(w, "%s%s\n", line[:cut], scoreColor.Sprint(line[cut:]))
	}
}

// formatCells left-aligns each cell to its column width, two spaces apart.
// The last cell is not padded.
func formatCells(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		b.WriteString(cell)
		if i == len(cells)-1 {
			break
		}
		b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)+2))
	}
	return b.String()
}

func addTyposFlags(cmd *cobra.Command) {
	defaults := deduplication.DefaultConfig()
	cmd.Flags().String("input", "", "Read rankings from this CSV instead of the database")
	cmd.Flags().String("output", "", "Also write the report to this CSV file")
	cmd.Flags().Bool("skip-invalid", false, "Skip --input rows that are too short instead of failing")
	cmd.Flags().Float64("min-score", defaults.MinScore, "Minimum similarity for a pair to be reported (0.0-1.0)")
	cmd.Flags().Int("gram-size", defaults.GramSize, "N-gram length used by the similarity index")
	cmd.Flags().Bool("levenshtein", defaults.UseLevenshtein, "Score candidates by edit distance")
	cmd.Flags().Bool("one-direction", !defaults.BothDirections, "Report each pair once instead of as (A, B) and (B, A)")
	cmd.Flags().Int("concurrency", defaults.Concurrency, "Number of groups scanned in parallel")
	cmd.Flags().Bool("save", false, "Store the report in the database")
}

func init() {
	addTyposFlags(typosCmd)
	rootCmd.AddCommand(typosCmd)
}
