// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gh-log",
	Short: "GitHub PR analytics for your terminal",
	Long: `gh-log pulls your GitHub PR data for a calendar month and turns it into
lead-time statistics, weekly and per-repository breakdowns, size
distribution (S/M/L/XL) and reviewer tallies.

View the results interactively or export them as text, JSON or CSV.

Requires: GITHUB_TOKEN environment variable with a valid token.
Caching: current month cached 6h, last month 24h, older months permanent.
         Use the --force flag to refresh cached data.

Examples:
  gh-log view                    # Interactive TUI for current month
  gh-log print --json            # Structured export, e.g. for an LLM
  gh-log doctor                  # Check setup`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
