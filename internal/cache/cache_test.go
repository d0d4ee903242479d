package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawaday/gh-log/internal/domain"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(t.TempDir(), MaxCachedPRs)
	require.NoError(t, err)
	return c
}

func samplePRs() []domain.PullRequest {
	return []domain.PullRequest{
		{
			Number:     1,
			Title:      "feat: add widgets",
			Repository: domain.Repository{NameWithOwner: "acme/widgets"},
			CreatedAt:  time.Date(2024, time.May, 6, 10, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2024, time.May, 6, 12, 0, 0, 0, time.UTC),
			Additions:  10,
			Deletions:  2,
		},
	}
}

func TestCache_SaveAndLoad(t *testing.T) {
	c := newTestCache(t)
	now := time.Date(2024, time.August, 1, 12, 0, 0, 0, time.UTC)

	snap := &Snapshot{
		Month:         "2024-05",
		Timestamp:     now.Add(-90 * 24 * time.Hour),
		PRs:           samplePRs(),
		ReviewedCount: 7,
	}
	require.NoError(t, c.Save(snap))

	got, err := c.Load("2024-05", now)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2024-05", got.Month)
	assert.Equal(t, 7, got.ReviewedCount)
	require.Len(t, got.PRs, 1)
	assert.Equal(t, "acme/widgets", got.PRs[0].Repository.NameWithOwner)
	assert.True(t, got.PRs[0].CreatedAt.Equal(snap.PRs[0].CreatedAt))
}

func TestCache_Miss(t *testing.T) {
	c := newTestCache(t)

	got, err := c.Load("2024-05", time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_Freshness(t *testing.T) {
	now := time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		month     string
		age       time.Duration
		wantFresh bool
	}{
		{name: "current month within 6h", month: "2024-08", age: 5 * time.Hour, wantFresh: true},
		{name: "current month beyond 6h", month: "2024-08", age: 7 * time.Hour, wantFresh: false},
		{name: "previous month within 24h", month: "2024-07", age: 20 * time.Hour, wantFresh: true},
		{name: "previous month beyond 24h", month: "2024-07", age: 30 * time.Hour, wantFresh: false},
		{name: "older month never expires", month: "2024-01", age: 200 * 24 * time.Hour, wantFresh: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestCache(t)
			snap := &Snapshot{Month: tc.month, Timestamp: now.Add(-tc.age), PRs: samplePRs()}
			require.NoError(t, c.Save(snap))

			got, err := c.Load(tc.month, now)
			require.NoError(t, err)
			if tc.wantFresh {
				assert.NotNil(t, got)
			} else {
				assert.Nil(t, got)
			}
		})
	}
}

func TestCache_StaleFileRemoved(t *testing.T) {
	c := newTestCache(t)
	now := time.Date(2024, time.August, 15, 12, 0, 0, 0, time.UTC)

	snap := &Snapshot{Month: "2024-08", Timestamp: now.Add(-48 * time.Hour), PRs: samplePRs()}
	require.NoError(t, c.Save(snap))

	got, err := c.Load("2024-08", now)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = os.Stat(filepath.Join(c.Dir(), "2024-08.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCache_CorruptFile(t *testing.T) {
	c := newTestCache(t)
	path := filepath.Join(c.Dir(), "2024-05.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := c.Load("2024-05", time.Now().UTC())
	assert.ErrorContains(t, err, "failed to parse cache file")
}

func TestCache_RefusesOversizedSnapshot(t *testing.T) {
	c, err := New(t.TempDir(), 2)
	require.NoError(t, err)

	snap := &Snapshot{
		Month:     "2024-05",
		Timestamp: time.Now().UTC(),
		PRs:       make([]domain.PullRequest, 3),
	}
	assert.ErrorContains(t, c.Save(snap), "too many PRs to cache")
}
