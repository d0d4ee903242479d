// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"time"

	"github.com/spf13/cobra"

	"github.com/sawaday/gh-log/internal/cache"
	"github.com/sawaday/gh-log/internal/config"
	"github.com/sawaday/gh-log/internal/domain"
	"github.com/sawaday/gh-log/internal/gateway"
	"github.com/sawaday/gh-log/internal/usecase"
)

var monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

// newLogger builds the command logger: silent by default, stderr when the
// root --verbose flag is set. Same wiring as every command in this package.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		verbose, _ = cmd.InheritedFlags().GetBool("verbose")
	}
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// resolveMonth validates a --month value, defaulting to the current month.
// This is the only wall-clock read outside the cache TTL check.
func resolveMonth(month string) (string, error) {
	if month == "" {
		return time.Now().UTC().Format("2006-01"), nil
	}
	if !monthRe.MatchString(month) {
		return "", fmt.Errorf("month must be in format YYYY-MM, e.g. 2025-11")
	}
	return month, nil
}

// buildMonthStats wires config, cache, gateway and the aggregation engine
// together and produces the final analytics for one month. Malformed records
// are reported on stderr and skipped.
func buildMonthStats(cmd *cobra.Command, month string, force bool) (*domain.MonthStats, error) {
	logger := newLogger(cmd)

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is not set")
	}

	cfg, err := config.Default()
	if err != nil {
		return nil, err
	}
	githubGateway, err := gateway.NewGitHubGateway(token, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	monthCache, err := cache.Default()
	if err != nil {
		return nil, err
	}

	service := usecase.NewMonthService(githubGateway, monthCache, logger)
	snapshot, err := service.Snapshot(cmd.Context(), month, force)
	if err != nil {
		return nil, err
	}

	aggregator := usecase.NewAggregator(cfg.Rules(), cfg.Size, logger)
	stats, recordErrs := aggregator.Aggregate(month, snapshot.PRs, snapshot.ReviewedCount)
	for _, recordErr := range recordErrs {
		fmt.Fprintf(os.Stderr, "Warning: skipping malformed record: %v\n", recordErr)
	}
	return stats, nil
}
