package domain

import (
	"regexp"
	"slices"
)

// FilterRules holds the compiled exclude/ignore rules applied before aggregation.
// Exclude removes a PR from every downstream computation, reviewer tallies
// included. Ignore is evaluated against the exclude-survivors only and removes
// a PR from the metrics. Patterns are compiled once at configuration load time.
type FilterRules struct {
	ExcludeRepos    []string
	ExcludePatterns []*regexp.Regexp
	IgnoreRepos     []string
	IgnorePatterns  []*regexp.Regexp
}

// Excluded reports whether the PR matches any exclude rule.
func (r FilterRules) Excluded(pr PullRequest) bool {
	return slices.Contains(r.ExcludeRepos, pr.Repository.NameWithOwner) ||
		matchesAny(r.ExcludePatterns, pr.Title)
}

// Ignored reports whether the PR matches any ignore rule. Callers apply this
// to exclude-survivors only, so an entry present in both lists excludes.
func (r FilterRules) Ignored(pr PullRequest) bool {
	return slices.Contains(r.IgnoreRepos, pr.Repository.NameWithOwner) ||
		matchesAny(r.IgnorePatterns, pr.Title)
}

func matchesAny(patterns []*regexp.Regexp, title string) bool {
	for _, re := range patterns {
		if re.MatchString(title) {
			return true
		}
	}
	return false
}
