// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sawaday/gh-log/internal/render"
)

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Print PRs as text/json/csv - pipe to LLMs, clipboard, or files",
	Long: `Print PR data in various formats for different use cases:

  - Default: Human-readable text with PR descriptions
  - --json: Structured data for LLMs, scripts, or further processing
  - --csv: Spreadsheet-compatible format

This is particularly useful for performance reviews - pipe the output
to your clipboard, feed it to an LLM, or export to a spreadsheet.

Data is cached after the first fetch. Use --force to bypass cache.

Examples:
  # Copy to clipboard for performance review
  gh-log print | pbcopy                    # macOS
  gh-log print | xclip -selection c        # Linux

  # Export to spreadsheet
  gh-log print --csv > prs-2025-01.csv

  # Specific month with fresh data
  gh-log print --month 2024-12 --force --json`,
	Run: func(cmd *cobra.Command, args []string) {
		monthFlag, _ := cmd.Flags().GetString("month")
		force, _ := cmd.Flags().GetBool("force")
		asJSON, _ := cmd.Flags().GetBool("json")
		asCSV, _ := cmd.Flags().GetBool("csv")

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

		switch {
		case asJSON:
			err = render.JSON(os.Stdout, stats)
		case asCSV:
			err = render.CSV(os.Stdout, stats)
		default:
			err = render.Text(os.Stdout, stats)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().String("month", "", "Month in format YYYY-MM, e.g. 2025-11 (defaults to current month)")
	printCmd.Flags().Bool("force", false, "Force refresh data from GitHub API, bypassing cache")
	printCmd.Flags().Bool("json", false, "Output data in JSON format")
	printCmd.Flags().Bool("csv", false, "Output data in CSV format")
}
