package usecase

import (
	"io"
	"log"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawaday/gh-log/internal/domain"
)

// testPR builds a pull request with a fixed lead time and optional reviewers.
func testPR(repo string, number int, title string, created time.Time, lead time.Duration, additions, deletions, changedFiles int, reviewers ...string) domain.PullRequest {
	reviews := domain.Reviews{}
	for _, login := range reviewers {
		reviews.Nodes = append(reviews.Nodes, domain.Review{Author: domain.Author{Login: login}})
	}
	return domain.PullRequest{
		Number:       number,
		Title:        title,
		Repository:   domain.Repository{NameWithOwner: repo},
		CreatedAt:    created,
		UpdatedAt:    created.Add(lead),
		Additions:    additions,
		Deletions:    deletions,
		ChangedFiles: changedFiles,
		Reviews:      reviews,
	}
}

func newTestAggregator(rules domain.FilterRules) *Aggregator {
	return NewAggregator(rules, domain.DefaultSizeThresholds(), log.New(io.Discard, "", 0))
}

func utc(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

// May 6 2024 is a Monday, so the first week window starts on the first PR's
// own day.
func TestAggregator_MonthScenario(t *testing.T) {
	agg := newTestAggregator(domain.FilterRules{})
	prs := []domain.PullRequest{
		testPR("acme/widgets", 101, "Fix parser", utc(2024, time.May, 6, 10), 2*time.Hour, 10, 5, 2),
		testPR("acme/widgets", 102, "Rework storage", utc(2024, time.May, 8, 10), 2*time.Hour, 300, 100, 8),
		testPR("acme/widgets", 103, "Tweak logging", utc(2024, time.May, 15, 10), 2*time.Hour, 10, 5, 2),
	}

	stats, recordErrs := agg.Aggregate("2024-05", prs, 4)
	require.Empty(t, recordErrs)

	assert.Equal(t, utc(2024, time.May, 1, 0), stats.MonthStart)
	assert.Equal(t, 3, stats.TotalPRs)
	assert.Equal(t, 2*time.Hour, stats.AvgLeadTime)
	assert.Equal(t, 2*time.Hour, stats.MedianLeadTime)
	assert.Equal(t, 2*time.Hour, stats.LongestLeadTime)
	assert.Equal(t, domain.SizeDistribution{S: 2, L: 1}, stats.Sizes)
	assert.Equal(t, 4, stats.ReviewedCount)

	// 9 days between first and last PR: 3 / (9/7) per week.
	assert.InDelta(t, 3.0/(9.0/7.0), stats.Frequency, 0.001)

	require.Len(t, stats.Weeks, 2)
	assert.Equal(t, utc(2024, time.May, 6, 0), stats.Weeks[0].Start)
	assert.Equal(t, time.Date(2024, time.May, 12, 23, 59, 59, 0, time.UTC), stats.Weeks[0].End)
	assert.Equal(t, 2, stats.Weeks[0].PRCount)
	assert.Equal(t, 1, stats.Weeks[1].PRCount)

	require.Len(t, stats.Repos, 1)
	assert.Equal(t, "acme/widgets", stats.Repos[0].Name)
	assert.Equal(t, 3, stats.Repos[0].PRCount)
	assert.Equal(t, domain.SizeDistribution{S: 2, L: 1}, stats.Repos[0].Sizes)
}

func TestAggregator_WeekBoundary(t *testing.T) {
	agg := newTestAggregator(domain.FilterRules{})
	week1Start := utc(2024, time.May, 6, 0) // Monday 00:00:00 UTC
	prs := []domain.PullRequest{
		testPR("acme/widgets", 1, "First", week1Start, time.Hour, 1, 1, 1),
		testPR("acme/widgets", 2, "Second", week1Start.AddDate(0, 0, 7), time.Hour, 1, 1, 1),
	}

	stats, _ := agg.Aggregate("2024-05", prs, 0)

	// Exactly 7 days after week1Start belongs to week 2, not week 1.
	require.Len(t, stats.Weeks, 2)
	assert.Equal(t, 1, stats.Weeks[0].PRCount)
	assert.Equal(t, 1, stats.Weeks[1].PRCount)
	assert.Equal(t, 2, stats.Weeks[1].PRs[0].Number)
}

func TestAggregator_WeekGridStartsOnMonday(t *testing.T) {
	agg := newTestAggregator(domain.FilterRules{})
	for day := 13; day <= 19; day++ { // Mon May 13 .. Sun May 19 2024
		created := utc(2024, time.May, day, 15)
		stats, _ := agg.Aggregate("2024-05", []domain.PullRequest{
			testPR("acme/widgets", day, "One", created, time.Minute, 1, 0, 1),
		}, 0)

		require.Len(t, stats.Weeks, 1)
		start := stats.Weeks[0].Start
		assert.Equal(t, time.Monday, start.Weekday())
		assert.False(t, start.After(created))
		assert.Less(t, created.Sub(start), 7*24*time.Hour)
	}
}

func TestAggregator_PartitionInvariants(t *testing.T) {
	agg := newTestAggregator(domain.FilterRules{})
	prs := []domain.PullRequest{
		testPR("acme/widgets", 1, "a", utc(2024, time.May, 2, 1), time.Hour, 10, 0, 1),
		testPR("acme/gears", 2, "b", utc(2024, time.May, 7, 5), 3*time.Hour, 120, 40, 4),
		testPR("acme/widgets", 3, "c", utc(2024, time.May, 14, 9), 30*time.Minute, 600, 10, 9),
		testPR("acme/cogs", 4, "d", utc(2024, time.May, 21, 23), 48*time.Hour, 5, 5, 30),
		testPR("acme/gears", 5, "e", utc(2024, time.May, 30, 12), 5*time.Hour, 40, 20, 16),
	}

	stats, _ := agg.Aggregate("2024-05", prs, 0)

	weekSum := 0
	for _, week := range stats.Weeks {
		weekSum += week.PRCount
		assert.Len(t, week.PRs, week.PRCount)
	}
	assert.Equal(t, stats.TotalPRs, weekSum)

	repoSum := 0
	var repoSizes domain.SizeDistribution
	for _, repo := range stats.Repos {
		repoSum += repo.PRCount
		repoSizes.S += repo.Sizes.S
		repoSizes.M += repo.Sizes.M
		repoSizes.L += repo.Sizes.L
		repoSizes.XL += repo.Sizes.XL
	}
	assert.Equal(t, stats.TotalPRs, repoSum)
	assert.Equal(t, stats.Sizes, repoSizes)
	assert.Equal(t, stats.TotalPRs, stats.Sizes.Total())
}

func TestAggregator_ExcludeRemovesEverywhere(t *testing.T) {
	agg := newTestAggregator(domain.FilterRules{
		ExcludeRepos: []string{"acme/spam"},
	})
	prs := []domain.PullRequest{
		testPR("acme/widgets", 1, "Keep", utc(2024, time.May, 6, 10), time.Hour, 1, 1, 1, "alice"),
		testPR("acme/spam", 2, "Drop", utc(2024, time.May, 7, 10), time.Hour, 1, 1, 1, "bob"),
	}

	stats, _ := agg.Aggregate("2024-05", prs, 0)

	assert.Equal(t, 1, stats.TotalPRs)
	require.Len(t, stats.Repos, 1)
	assert.Equal(t, "acme/widgets", stats.Repos[0].Name)

	// bob only reviewed the excluded PR, so he never appears.
	require.Len(t, stats.Reviewers, 1)
	assert.Equal(t, "alice", stats.Reviewers[0].Login)
}

func TestAggregator_IgnoreKeepsReviewerTally(t *testing.T) {
	agg := newTestAggregator(domain.FilterRules{
		IgnoreRepos: []string{"acme/notes"},
	})
	prs := []domain.PullRequest{
		testPR("acme/widgets", 1, "Keep", utc(2024, time.May, 6, 10), time.Hour, 1, 1, 1, "alice"),
		testPR("acme/notes", 2, "Skip metrics", utc(2024, time.May, 7, 10), time.Hour, 500, 500, 5, "bob"),
	}

	stats, _ := agg.Aggregate("2024-05", prs, 0)

	// Ignored PRs are removed from counts, histograms and detail lists but
	// still contribute review events.
	assert.Equal(t, 1, stats.TotalPRs)
	assert.Equal(t, domain.SizeDistribution{S: 1}, stats.Sizes)
	require.Len(t, stats.Repos, 1)
	assert.Equal(t, "acme/widgets", stats.Repos[0].Name)
	require.Len(t, stats.Reviewers, 2)
}

func TestAggregator_ExcludeWinsOverIgnore(t *testing.T) {
	agg := newTestAggregator(domain.FilterRules{
		ExcludeRepos: []string{"acme/both"},
		IgnoreRepos:  []string{"acme/both"},
	})
	prs := []domain.PullRequest{
		testPR("acme/widgets", 1, "Keep", utc(2024, time.May, 6, 10), time.Hour, 1, 1, 1),
		testPR("acme/both", 2, "Gone", utc(2024, time.May, 7, 10), time.Hour, 1, 1, 1, "carol"),
	}

	stats, _ := agg.Aggregate("2024-05", prs, 0)

	assert.Equal(t, 1, stats.TotalPRs)
	assert.Empty(t, stats.Reviewers)
}

func TestAggregator_TitlePatternsSearchUnanchored(t *testing.T) {
	agg := newTestAggregator(domain.FilterRules{
		ExcludePatterns: []*regexp.Regexp{regexp.MustCompile("WIP")},
	})
	prs := []domain.PullRequest{
		testPR("acme/widgets", 1, "feat: WIP refactor", utc(2024, time.May, 6, 10), time.Hour, 1, 1, 1),
		testPR("acme/widgets", 2, "feat: done", utc(2024, time.May, 7, 10), time.Hour, 1, 1, 1),
	}

	stats, _ := agg.Aggregate("2024-05", prs, 0)

	assert.Equal(t, 1, stats.TotalPRs)
	assert.Equal(t, 2, stats.Weeks[0].PRs[0].Number)
}

func TestAggregator_EmptyMonth(t *testing.T) {
	testCases := []struct {
		name  string
		rules domain.FilterRules
		prs   []domain.PullRequest
	}{
		{
			name: "no PRs at all",
		},
		{
			name:  "all excluded",
			rules: domain.FilterRules{ExcludeRepos: []string{"acme/spam"}},
			prs: []domain.PullRequest{
				testPR("acme/spam", 1, "x", utc(2024, time.May, 6, 10), time.Hour, 1, 1, 1, "alice"),
			},
		},
		{
			name:  "all ignored",
			rules: domain.FilterRules{IgnoreRepos: []string{"acme/notes"}},
			prs: []domain.PullRequest{
				testPR("acme/notes", 1, "x", utc(2024, time.May, 6, 10), time.Hour, 1, 1, 1),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			agg := newTestAggregator(tc.rules)
			stats, recordErrs := agg.Aggregate("2024-05", tc.prs, 7)

			assert.Empty(t, recordErrs)
			assert.Equal(t, utc(2024, time.May, 1, 0), stats.MonthStart)
			assert.Zero(t, stats.TotalPRs)
			assert.Zero(t, stats.AvgLeadTime)
			assert.Zero(t, stats.Frequency)
			assert.Empty(t, stats.Weeks)
			assert.Empty(t, stats.Repos)
			assert.Empty(t, stats.Reviewers)
			assert.Equal(t, domain.SizeDistribution{}, stats.Sizes)
			assert.Equal(t, 7, stats.ReviewedCount)
		})
	}
}

func TestAggregator_MalformedRecordSkipped(t *testing.T) {
	agg := newTestAggregator(domain.FilterRules{})
	bad := testPR("acme/widgets", 13, "Broken clock", utc(2024, time.May, 7, 10), time.Hour, 1, 1, 1)
	bad.UpdatedAt = bad.CreatedAt.Add(-time.Minute)
	prs := []domain.PullRequest{
		testPR("acme/widgets", 1, "Fine", utc(2024, time.May, 6, 10), time.Hour, 1, 1, 1),
		bad,
	}

	stats, recordErrs := agg.Aggregate("2024-05", prs, 0)

	require.Len(t, recordErrs, 1)
	assert.Equal(t, 13, recordErrs[0].Number)
	assert.Equal(t, "acme/widgets", recordErrs[0].Repo)
	assert.Equal(t, 1, stats.TotalPRs)
}

func TestAggregator_RepoAndReviewerOrdering(t *testing.T) {
	agg := newTestAggregator(domain.FilterRules{})
	prs := []domain.PullRequest{
		testPR("acme/zebra", 1, "a", utc(2024, time.May, 6, 10), time.Hour, 1, 1, 1, "zoe", "amy"),
		testPR("acme/apple", 2, "b", utc(2024, time.May, 7, 10), time.Hour, 1, 1, 1, "amy"),
		testPR("acme/apple", 3, "c", utc(2024, time.May, 8, 10), time.Hour, 1, 1, 1, "zoe"),
		testPR("acme/mango", 4, "d", utc(2024, time.May, 9, 10), time.Hour, 1, 1, 1),
	}

	stats, _ := agg.Aggregate("2024-05", prs, 0)

	// Repos: count descending, ties by name ascending.
	require.Len(t, stats.Repos, 3)
	assert.Equal(t, "acme/apple", stats.Repos[0].Name)
	assert.Equal(t, "acme/mango", stats.Repos[1].Name)
	assert.Equal(t, "acme/zebra", stats.Repos[2].Name)

	// Reviewers tie at two events each: login ascending.
	require.Len(t, stats.Reviewers, 2)
	assert.Equal(t, "amy", stats.Reviewers[0].Login)
	assert.Equal(t, 2, stats.Reviewers[0].PRCount)
	assert.Equal(t, "zoe", stats.Reviewers[1].Login)
}

func TestAggregator_DuplicateReviewEventsCountTwice(t *testing.T) {
	agg := newTestAggregator(domain.FilterRules{})
	prs := []domain.PullRequest{
		testPR("acme/widgets", 1, "a", utc(2024, time.May, 6, 10), time.Hour, 1, 1, 1, "amy", "amy"),
	}

	stats, _ := agg.Aggregate("2024-05", prs, 0)

	require.Len(t, stats.Reviewers, 1)
	assert.Equal(t, 2, stats.Reviewers[0].PRCount)
}

func TestAvgDuration(t *testing.T) {
	assert.Equal(t, time.Duration(0), avgDuration(nil))
	assert.Equal(t, 90*time.Minute, avgDuration([]time.Duration{90 * time.Minute}))

	// Floor division: (1s + 2s) / 2 = 1s.
	assert.Equal(t, time.Second, avgDuration([]time.Duration{time.Second, 2 * time.Second}))

	forward := []time.Duration{time.Minute, time.Hour, 24 * time.Hour}
	backward := []time.Duration{24 * time.Hour, time.Hour, time.Minute}
	assert.Equal(t, avgDuration(forward), avgDuration(backward))
}

func TestFrequency(t *testing.T) {
	day := utc(2024, time.May, 6, 10)

	// All PRs on one day: report the raw count, no sub-week inflation.
	assert.InDelta(t, 5.0, frequency(5, day, day), 0.001)

	// Nine-day span: count divided by 9/7 weeks.
	assert.InDelta(t, 3.0/(9.0/7.0), frequency(3, day, day.AddDate(0, 0, 9)), 0.001)
}

func TestMondayOf(t *testing.T) {
	// Mon May 6 2024 through Sun May 12 2024 all map to Mon May 6.
	monday := utc(2024, time.May, 6, 0)
	for day := 6; day <= 12; day++ {
		got := mondayOf(time.Date(2024, time.May, day, 17, 30, 0, 0, time.UTC))
		assert.Equal(t, monday, got, "day %d", day)
	}
}
