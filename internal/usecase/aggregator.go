// Package usecase contains the business logic of the application.
package usecase

import (
	"log"
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/sawaday/gh-log/internal/domain"
)

// Aggregator turns one month's batch of pull requests into MonthStats.
// It is a pure, synchronous transform: no I/O, no clock reads, safe to run
// concurrently for different months.
type Aggregator struct {
	rules      domain.FilterRules
	thresholds domain.SizeThresholds
	logger     *log.Logger
}

// NewAggregator creates a new Aggregator instance. The thresholds are assumed
// to have been validated at configuration load time.
func NewAggregator(rules domain.FilterRules, thresholds domain.SizeThresholds, logger *log.Logger) *Aggregator {
	return &Aggregator{
		rules:      rules,
		thresholds: thresholds,
		logger:     logger,
	}
}

// weekBucket is the ephemeral grouping used while the week grid is populated.
type weekBucket struct {
	start, end time.Time
	prs        []domain.PullRequest
}

// Aggregate runs the four stages in sequence: filter, classify, bucket,
// rollup. The month label is used only to anchor the empty-month fallback.
// Malformed records (updated before created) are skipped and reported, one
// RecordError each; the returned stats are always valid.
func (a *Aggregator) Aggregate(month string, prs []domain.PullRequest, reviewedCount int) (*domain.MonthStats, []*domain.RecordError) {
	a.logger.Printf("Usecase: Aggregating %d PRs for %s...", len(prs), month)

	valid, recordErrs := validateRecords(prs)
	for _, re := range recordErrs {
		a.logger.Printf("Usecase: Skipping malformed record: %v", re)
	}

	// Exclude first: these PRs vanish from everything, reviewer tallies included.
	survivors := make([]domain.PullRequest, 0, len(valid))
	for _, pr := range valid {
		if a.rules.Excluded(pr) {
			continue
		}
		survivors = append(survivors, pr)
	}

	// Ignore second, against the exclude-survivors only.
	metrics := make([]domain.PullRequest, 0, len(survivors))
	for _, pr := range survivors {
		if a.rules.Ignored(pr) {
			continue
		}
		metrics = append(metrics, pr)
	}

	if len(survivors) == 0 || len(metrics) == 0 {
		a.logger.Printf("Usecase: No PRs left after filtering for %s.", month)
		return emptyMonth(month, reviewedCount), recordErrs
	}

	// Canonical order for every per-week and per-repo list downstream.
	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].CreatedAt.Before(metrics[j].CreatedAt)
	})

	earliest := metrics[0].CreatedAt
	latest := metrics[len(metrics)-1].CreatedAt
	monthStart := time.Date(earliest.Year(), earliest.Month(), 1, 0, 0, 0, 0, time.UTC)

	buckets := buildWeekGrid(earliest, latest)
	for _, pr := range metrics {
		for i := range buckets {
			if !pr.CreatedAt.Before(buckets[i].start) && !pr.CreatedAt.After(buckets[i].end) {
				buckets[i].prs = append(buckets[i].prs, pr)
				break
			}
		}
	}

	weeks := make([]domain.WeekStats, len(buckets))
	for i, b := range buckets {
		weeks[i] = domain.WeekStats{
			WeekNum:     i + 1,
			Start:       b.start,
			End:         b.end,
			PRCount:     len(b.prs),
			AvgLeadTime: avgDuration(leadTimes(b.prs)),
			PRs:         a.details(b.prs),
		}
	}

	var sizes domain.SizeDistribution
	for _, pr := range metrics {
		sizes.Add(a.classify(pr))
	}

	a.logger.Printf("Usecase: Aggregation complete for %s.", month)
	return &domain.MonthStats{
		MonthStart:      monthStart,
		TotalPRs:        len(metrics),
		AvgLeadTime:     avgDuration(leadTimes(metrics)),
		MedianLeadTime:  medianDuration(leadTimes(metrics)),
		LongestLeadTime: maxDuration(leadTimes(metrics)),
		Frequency:       frequency(len(metrics), earliest, latest),
		Sizes:           sizes,
		Weeks:           weeks,
		Repos:           a.groupByRepo(metrics),
		Reviewers:       tallyReviewers(survivors),
		ReviewedCount:   reviewedCount,
	}, recordErrs
}

func validateRecords(prs []domain.PullRequest) ([]domain.PullRequest, []*domain.RecordError) {
	valid := make([]domain.PullRequest, 0, len(prs))
	var errs []*domain.RecordError
	for _, pr := range prs {
		if pr.UpdatedAt.Before(pr.CreatedAt) {
			errs = append(errs, &domain.RecordError{
				Repo:      pr.Repository.NameWithOwner,
				Number:    pr.Number,
				CreatedAt: pr.CreatedAt,
				UpdatedAt: pr.UpdatedAt,
			})
			continue
		}
		valid = append(valid, pr)
	}
	return valid, errs
}

// buildWeekGrid lays out contiguous Monday-aligned 7-day windows covering
// [earliest, latest]. Window starts are Mondays 00:00:00 UTC, ends the
// following Sundays 23:59:59 UTC.
func buildWeekGrid(earliest, latest time.Time) []weekBucket {
	week1Start := mondayOf(earliest)
	spanDays := int(latest.Sub(week1Start) / (24 * time.Hour))
	weeksNeeded := spanDays/7 + 1
	if weeksNeeded < 1 {
		weeksNeeded = 1
	}

	buckets := make([]weekBucket, weeksNeeded)
	for i := range buckets {
		start := week1Start.AddDate(0, 0, i*7)
		end := start.AddDate(0, 0, 6).Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		buckets[i] = weekBucket{start: start, end: end}
	}
	return buckets
}

// mondayOf returns the Monday at or before t, truncated to 00:00:00 UTC.
func mondayOf(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(t.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return day.AddDate(0, 0, -offset)
}

func (a *Aggregator) classify(pr domain.PullRequest) domain.Size {
	return domain.Classify(pr.Additions, pr.Deletions, pr.ChangedFiles, a.thresholds)
}

func (a *Aggregator) details(prs []domain.PullRequest) []domain.PRDetail {
	details := make([]domain.PRDetail, len(prs))
	for i, pr := range prs {
		details[i] = domain.PRDetail{
			Number:       pr.Number,
			Title:        pr.Title,
			Body:         pr.Body,
			Repo:         pr.Repository.NameWithOwner,
			CreatedAt:    pr.CreatedAt,
			LeadTime:     pr.LeadTime(),
			Size:         a.classify(pr),
			Additions:    pr.Additions,
			Deletions:    pr.Deletions,
			ChangedFiles: pr.ChangedFiles,
		}
	}
	return details
}

// groupByRepo groups the metrics list by repository full name and sorts the
// result descending by PR count. Groups are built in sorted key order and the
// count sort is stable, so ties stay in name-ascending order.
func (a *Aggregator) groupByRepo(metrics []domain.PullRequest) []domain.RepoStats {
	byRepo := make(map[string][]domain.PullRequest)
	for _, pr := range metrics {
		name := pr.Repository.NameWithOwner
		byRepo[name] = append(byRepo[name], pr)
	}

	names := make([]string, 0, len(byRepo))
	for name := range byRepo {
		names = append(names, name)
	}
	sort.Strings(names)

	repos := make([]domain.RepoStats, 0, len(names))
	for _, name := range names {
		prs := byRepo[name]
		var sizes domain.SizeDistribution
		for _, pr := range prs {
			sizes.Add(a.classify(pr))
		}
		repos = append(repos, domain.RepoStats{
			Name:        name,
			PRCount:     len(prs),
			AvgLeadTime: avgDuration(leadTimes(prs)),
			Sizes:       sizes,
			PRs:         a.details(prs),
		})
	}

	sort.SliceStable(repos, func(i, j int) bool {
		return repos[i].PRCount > repos[j].PRCount
	})
	return repos
}

// tallyReviewers counts one increment per review event across the
// exclude-survivor list, sorted descending by count with ties broken by
// login ascending.
func tallyReviewers(survivors []domain.PullRequest) []domain.ReviewerStats {
	tally := make(map[string]int)
	for _, pr := range survivors {
		for _, review := range pr.Reviews.Nodes {
			tally[review.Author.Login]++
		}
	}

	logins := make([]string, 0, len(tally))
	for login := range tally {
		logins = append(logins, login)
	}
	sort.Strings(logins)

	reviewers := make([]domain.ReviewerStats, 0, len(logins))
	for _, login := range logins {
		reviewers = append(reviewers, domain.ReviewerStats{Login: login, PRCount: tally[login]})
	}
	sort.SliceStable(reviewers, func(i, j int) bool {
		return reviewers[i].PRCount > reviewers[j].PRCount
	})
	return reviewers
}

func leadTimes(prs []domain.PullRequest) []time.Duration {
	durations := make([]time.Duration, len(prs))
	for i, pr := range prs {
		durations[i] = pr.LeadTime()
	}
	return durations
}

// avgDuration floors to whole seconds: durations are summed in seconds and
// integer-divided by the count. Empty input yields zero.
func avgDuration(durations []time.Duration) time.Duration {
	if len(durations) == 0 {
		return 0
	}
	var totalSeconds int64
	for _, d := range durations {
		totalSeconds += int64(d / time.Second)
	}
	return time.Duration(totalSeconds/int64(len(durations))) * time.Second
}

func medianDuration(durations []time.Duration) time.Duration {
	median, err := stats.Median(durationSeconds(durations))
	if err != nil {
		return 0
	}
	return time.Duration(median) * time.Second
}

func maxDuration(durations []time.Duration) time.Duration {
	longest, err := stats.Max(durationSeconds(durations))
	if err != nil {
		return 0
	}
	return time.Duration(longest) * time.Second
}

func durationSeconds(durations []time.Duration) []float64 {
	seconds := make([]float64, len(durations))
	for i, d := range durations {
		seconds[i] = float64(d / time.Second)
	}
	return seconds
}

// frequency is PRs per week over the observed span. The span is floored at
// one day, and the week divisor at one, so a single-day month reports its
// raw count instead of dividing by a sub-week fraction.
func frequency(count int, earliest, latest time.Time) float64 {
	spanDays := int64(latest.Sub(earliest) / (24 * time.Hour))
	if spanDays < 1 {
		spanDays = 1
	}
	weeks := float64(spanDays) / 7
	if weeks < 1 {
		weeks = 1
	}
	return float64(count) / weeks
}

// emptyMonth is the defined result for a batch with no PRs, or one filtered
// down to nothing. The anchor comes from the requested month label since no
// PR timestamp is available; the label is validated by the CLI before the
// engine sees it.
func emptyMonth(month string, reviewedCount int) *domain.MonthStats {
	anchor, err := time.Parse("2006-01", month)
	if err != nil {
		anchor = time.Time{}
	}
	return &domain.MonthStats{
		MonthStart:    anchor,
		Weeks:         []domain.WeekStats{},
		Repos:         []domain.RepoStats{},
		Reviewers:     []domain.ReviewerStats{},
		ReviewedCount: reviewedCount,
	}
}
