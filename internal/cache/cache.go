// Package cache persists monthly PR snapshots as JSON files in the OS cache
// directory so repeat runs avoid extra GitHub calls. The current month
// refreshes after six hours, the previous month after twenty-four, and older
// snapshots stick around indefinitely.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sawaday/gh-log/internal/domain"
)

const (
	// MaxCachedPRs bounds a snapshot before it is written to disk.
	MaxCachedPRs = 10_000

	currentMonthTTL  = 6 * time.Hour
	previousMonthTTL = 24 * time.Hour
	lastMonthLookbackDays = 30
)

// Snapshot is one month's cached fetch result.
type Snapshot struct {
	Month         string               `json:"month"`
	Timestamp     time.Time            `json:"timestamp"`
	PRs           []domain.PullRequest `json:"prs"`
	ReviewedCount int                  `json:"reviewed_count"`
}

// Cache is a file-backed store of monthly snapshots, one JSON file per month.
type Cache struct {
	dir    string
	maxPRs int
}

// Default builds a cache rooted in the operating system's cache directory.
func Default() (*Cache, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return New(dir, MaxCachedPRs)
}

// DefaultDir returns the gh-log cache directory for this OS.
func DefaultDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine cache directory: %w", err)
	}
	return filepath.Join(base, "gh-log"), nil
}

// New constructs a cache at a custom location with a custom PR cap.
func New(dir string, maxPRs int) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", dir, err)
	}
	return &Cache{dir: dir, maxPRs: maxPRs}, nil
}

// Dir is the directory the cache files live in.
func (c *Cache) Dir() string { return c.dir }

// Load returns the snapshot for a month when it exists on disk and is still
// fresh relative to now, or nil on a miss. Stale files are removed so the
// next save starts clean; corrupt files are errors.
func (c *Cache) Load(month string, now time.Time) (*Snapshot, error) {
	path := c.filePath(month)
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file for %s: %w", month, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(contents, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse cache file for %s: %w", month, err)
	}

	if fresh(month, snap.Timestamp, now) {
		return &snap, nil
	}

	if err := os.Remove(path); err != nil {
		return nil, fmt.Errorf("failed to remove stale cache file for %s: %w", month, err)
	}
	return nil, nil
}

// Save persists a month's snapshot, refusing batches above the PR cap.
func (c *Cache) Save(snap *Snapshot) error {
	if len(snap.PRs) > c.maxPRs {
		return fmt.Errorf("too many PRs to cache: %d, max %d", len(snap.PRs), c.maxPRs)
	}

	contents, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize cache data for %s: %w", snap.Month, err)
	}
	path := c.filePath(snap.Month)
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", path, err)
	}
	return nil
}

func (c *Cache) filePath(month string) string {
	return filepath.Join(c.dir, month+".json")
}

// fresh applies the tiered TTL: 6h for the current month, 24h for the
// previous month (30-day lookback), unlimited for anything older.
func fresh(month string, cachedAt, now time.Time) bool {
	age := now.Sub(cachedAt)
	currentMonth := now.Format("2006-01")
	lastMonth := now.AddDate(0, 0, -lastMonthLookbackDays).Format("2006-01")

	switch month {
	case currentMonth:
		return age < currentMonthTTL
	case lastMonth:
		return age < previousMonthTTL
	default:
		return true
	}
}
