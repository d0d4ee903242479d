package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/sawaday/gh-log/internal/domain"
)

const topReviewers = 10

// Text writes the human-readable report: month header, weekly and repository
// summaries, top reviewers, then the per-week PR details with descriptions.
func Text(w io.Writer, stats *domain.MonthStats) error {
	var b strings.Builder

	fmt.Fprintf(&b, "GitHub PRs for %s\n", FormatMonth(stats.MonthStart))
	fmt.Fprintf(&b, "Total PRs: %d | Avg Lead Time: %s | Median: %s | Frequency: %s\n",
		stats.TotalPRs,
		FormatDuration(stats.AvgLeadTime),
		FormatDuration(stats.MedianLeadTime),
		FormatFrequency(stats.Frequency))
	fmt.Fprintf(&b, "Sizes: %s | Reviewed by me: %d\n\n", stats.Sizes, stats.ReviewedCount)

	b.WriteString("Weeks\n")
	for _, week := range stats.Weeks {
		fmt.Fprintf(&b, "  Week %d (%s) | %2d PRs | Avg: %s\n",
			week.WeekNum,
			FormatDateRangeShort(week.Start, week.End),
			week.PRCount,
			FormatDuration(week.AvgLeadTime))
	}
	b.WriteString("\nRepositories\n")
	for _, repo := range stats.Repos {
		fmt.Fprintf(&b, "  %s | %2d PRs | Avg: %s | [%s]\n",
			repo.Name, repo.PRCount, FormatDuration(repo.AvgLeadTime), repo.Sizes)
	}
	b.WriteString("\nTop Reviewers\n")
	for i, reviewer := range stats.Reviewers {
		if i >= topReviewers {
			break
		}
		fmt.Fprintf(&b, "  %s | %d PRs\n", reviewer.Login, reviewer.PRCount)
	}

	for _, week := range stats.Weeks {
		fmt.Fprintf(&b, "\nWeek %d (%s)\n", week.WeekNum, FormatDateRangeShort(week.Start, week.End))
		for _, pr := range week.PRs {
			fmt.Fprintf(&b, "  %s | %s | #%d %s | %s | %s\n",
				FormatDateShort(pr.CreatedAt),
				pr.Repo,
				pr.Number,
				pr.Title,
				FormatDuration(pr.LeadTime),
				pr.Size)
			if pr.Body != "" {
				for _, line := range strings.Split(strings.TrimRight(pr.Body, "\n"), "\n") {
					fmt.Fprintf(&b, "    %s\n", line)
				}
			}
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
