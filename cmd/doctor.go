// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sawaday/gh-log/internal/cache"
	"github.com/sawaday/gh-log/internal/config"
	"github.com/sawaday/gh-log/internal/gateway"
)

const authProbeTimeout = 10 * time.Second

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify GitHub authentication and show cache/config paths",
	Long: `Runs a series of checks to verify that gh-log is properly configured
and can communicate with GitHub.

Checks performed:
  - GITHUB_TOKEN environment variable
  - GitHub authentication (who the token belongs to)

Also displays the locations of:
  - Cache directory (where PR data is stored)
  - Configuration file (if it exists)

Use this command to troubleshoot issues or find where your data is stored.

Common issues:
  'GITHUB_TOKEN is not set'
  → Create a token at https://github.com/settings/tokens and export it

  Stale data showing
  → Use --force flag with view/print commands to refresh`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("gh-log diagnostics")
		fmt.Println()

		logger := newLogger(cmd)
		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			fmt.Println("✗ GITHUB_TOKEN: not set")
		} else {
			fmt.Println("✓ GITHUB_TOKEN: set")
			githubGateway, err := gateway.NewGitHubGateway(token, logger)
			if err != nil {
				fmt.Printf("✗ GitHub client: %v\n", err)
			} else {
				ctx, cancel := context.WithTimeout(cmd.Context(), authProbeTimeout)
				defer cancel()
				login, err := githubGateway.CheckAuth(ctx)
				if err != nil {
					fmt.Printf("✗ GitHub authentication: %v\n", err)
				} else {
					fmt.Printf("✓ GitHub authentication: logged in as %s\n", login)
				}
			}
		}

		printCacheInfo()
		printConfigInfo()
	},
}

func printCacheInfo() {
	dir, err := cache.DefaultDir()
	if err != nil {
		fmt.Printf("\n✗ Could not determine cache directory: %v\n", err)
		return
	}
	fmt.Printf("\nCache directory: %s\n", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Println("  (directory does not exist yet)")
		return
	}

	found := false
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		found = true
		if info, err := entry.Info(); err == nil {
			fmt.Printf("  %s (%s)\n", entry.Name(), info.ModTime().UTC().Format("2006-01-02 15:04:05 UTC"))
		} else {
			fmt.Printf("  %s\n", entry.Name())
		}
	}
	if !found {
		fmt.Println("  (no cache files)")
	}
}

func printConfigInfo() {
	dir, err := config.DefaultDir()
	if err != nil {
		fmt.Printf("\n✗ Could not determine config directory: %v\n", err)
		return
	}
	path := filepath.Join(dir, "config.toml")
	fmt.Printf("\nConfiguration file: %s\n", path)
	if _, err := os.Stat(path); err == nil {
		fmt.Println("  (exists)")
	} else {
		fmt.Println("  (not created yet, using defaults)")
	}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
