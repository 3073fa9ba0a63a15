package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/steveyegge/mocktab/internal/types"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage registered teams",
}

var teamAddCmd = &cobra.Command{
	Use:   "add <number> <name>",
	Short: "Register a team or update its details",
	Long: `Register a team, or update the name, school and emails of an existing one.
The ballot folder link is kept; use 'mocktab team set-folder' to change it.

Example:
  mocktab team add 1234 "Central High A" --school "Central High" --emails coach@example.com,captain@example.com`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		school, _ := cmd.Flags().GetString("school")
		emails, _ := cmd.Flags().GetString("emails")

		team := &types.TeamInfo{
			Number: args[0],
			Name:   args[1],
			School: school,
			Emails: splitEmails(emails),
		}
		if err := store.UpsertTeam(context.Background(), team); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Saved team %s (%s)\n", green("✓"), team.Number, team.Name)
	},
}

var teamSetFolderCmd = &cobra.Command{
	Use:   "set-folder <number> <link>",
	Short: "Record the ballot folder link for a team",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		found, err := store.SetTeamBallotFolderLink(context.Background(), args[0], args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !found {
			fmt.Fprintf(os.Stderr, "Error: team %s is not registered\n", args[0])
			os.Exit(1)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Set ballot folder for team %s\n", green("✓"), args[0])
	},
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered teams",
	Run: func(cmd *cobra.Command, args []string) {
		teams, err := store.ListTeams(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if len(teams) == 0 {
			fmt.Println("No registered teams")
			return
		}

		gray := color.New(color.FgHiBlack).SprintFunc()
		for _, t := range teams {
			fmt.Printf("%-6s %s", t.Number, t.Name)
			if t.School != "" {
				fmt.Printf(" %s", gray("("+t.School+")"))
			}
			if t.BallotFolderLink != "" {
				fmt.Printf("\n       %s", gray(t.BallotFolderLink))
			}
			fmt.Println()
		}
	},
}

// splitEmails splits a comma-separated list, dropping blanks
func splitEmails(list string) []string {
	var emails []string
	for _, e := range strings.Split(list, ",") {
		if e = strings.TrimSpace(e); e != "" {
			emails = append(emails, e)
		}
	}
	return emails
}

func init() {
	teamAddCmd.Flags().String("school", "", "School the team represents")
	teamAddCmd.Flags().String("emails", "", "Comma-separated contact emails")

	teamCmd.AddCommand(teamAddCmd)
	teamCmd.AddCommand(teamSetFolderCmd)
	teamCmd.AddCommand(teamListCmd)
	rootCmd.AddCommand(teamCmd)
}
