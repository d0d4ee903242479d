// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sawaday/gh-log/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Interactive TUI - press 's' summary, 'd' detail (cycles by week/repo), 't' tail, 'q' quit",
	Long: `Launch an interactive TUI to browse your PRs. The interface has three
views that you can toggle between:

  - Summary (s): Weekly and repo statistics
  - Detail (d): Detailed list, cycle between grouped by week or by repo
  - Tail (t): All PRs sorted by lead time (longest first)

Use arrow keys or j/k to scroll, q or Esc to quit.

Data is cached after the first fetch. Use --force to bypass cache and
fetch fresh data from GitHub.

Examples:
  # View current month
  gh-log view

  # View a specific month
  gh-log view --month 2025-12

  # Force fresh data (bypass cache)
  gh-log view --force`,
	Run: func(cmd *cobra.Command, args []string) {
		monthFlag, _ := cmd.Flags().GetString("month")
		force, _ := cmd.Flags().GetBool("force")

		month, err := resolveMonth(monthFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		stats, err := buildMonthStats(cmd, month, force)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := tui.Run(stats); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().String("month", "", "Month in format YYYY-MM, e.g. 2025-11 (defaults to current month)")
	viewCmd.Flags().Bool("force", false, "Force refresh data from GitHub API, bypassing cache")
}
