package domain

import "time"

// PRDetail is one pull request as it appears in weekly and per-repository
// detail lists, with its derived lead time and size band attached.
type PRDetail struct {
	Number       int
	Title        string
	Body         string
	Repo         string
	CreatedAt    time.Time
	LeadTime     time.Duration
	Size         Size
	Additions    int
	Deletions    int
	ChangedFiles int
}

// WeekStats summarizes one Monday-aligned 7-day window. Start is Monday
// 00:00:00 UTC, End the following Sunday 23:59:59 UTC. PRs keeps the
// canonical ascending-by-creation order.
type WeekStats struct {
	WeekNum     int
	Start       time.Time
	End         time.Time
	PRCount     int
	AvgLeadTime time.Duration
	PRs         []PRDetail
}

// RepoStats summarizes the month's PRs for a single repository.
type RepoStats struct {
	Name        string
	PRCount     int
	AvgLeadTime time.Duration
	Sizes       SizeDistribution
	PRs         []PRDetail
}

// ReviewerStats counts review events by one reviewer across the month.
type ReviewerStats struct {
	Login   string
	PRCount int
}

// MonthStats is the complete analytics result for one calendar month. It is
// built once per invocation and never mutated afterwards; week and repo lists
// are ordered deterministically so repeated runs on identical input produce
// identical output.
type MonthStats struct {
	MonthStart      time.Time
	TotalPRs        int
	AvgLeadTime     time.Duration
	MedianLeadTime  time.Duration
	LongestLeadTime time.Duration
	Frequency       float64
	Sizes           SizeDistribution
	Weeks           []WeekStats
	Repos           []RepoStats
	Reviewers       []ReviewerStats
	ReviewedCount   int
}
