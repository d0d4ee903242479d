// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sawaday/gh-log/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create/show config - exclude/ignore repos, customize PR size thresholds",
	Long: `Show the configuration file, creating a template if it does not exist.

Configuration allows you to:
  - Exclude repos/PRs completely (won't be shown)
  - Ignore repos/PRs (shown but not counted in metrics)
  - Customize PR size thresholds (S/M/L/XL)

Patterns use regex syntax and are applied to PR titles.

If a repo appears in both exclude and ignore lists, it gets excluded.

Example configuration:
  [filter]
  exclude_repos = ["username/spam-repo"]
  exclude_patterns = ["^test:", "^tmp:"]
  ignore_repos = ["username/personal-notes"]
  ignore_patterns = ["^docs:", "^meeting:"]

  [size]
  small = 50
  medium = 200
  large = 500

Common regex patterns:
  ^prefix:     Match titles starting with "prefix:"
  (?i)keyword  Case-insensitive match
  (foo|bar)    Match either foo or bar`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, err := config.DefaultDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		path := filepath.Join(dir, "config.toml")
		if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if err := config.WriteTemplate(path); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Created config: %s\n", path)
			return
		}

		// Load (and therefore validate) before echoing, so a broken config is
		// reported here instead of at the next view/print run.
		if _, err := config.Load(dir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		contents, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(contents))
		fmt.Fprintf(os.Stderr, "\n# %s\n", path)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
