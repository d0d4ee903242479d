package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sawaday/gh-log/internal/domain"
)

var csvHeader = []string{
	"created_at", "repository", "number", "title",
	"lead_time_seconds", "size", "additions", "deletions", "changed_files",
}

// CSV writes one row per PR, flattened across the week buckets in canonical
// order, suitable for spreadsheet import.
func CSV(w io.Writer, stats *domain.MonthStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, week := range stats.Weeks {
		for _, pr := range week.PRs {
			row := []string{
				pr.CreatedAt.Format(time.RFC3339),
				pr.Repo,
				strconv.Itoa(pr.Number),
				pr.Title,
				strconv.FormatInt(seconds(pr.LeadTime), 10),
				string(pr.Size),
				strconv.Itoa(pr.Additions),
				strconv.Itoa(pr.Deletions),
				strconv.Itoa(pr.ChangedFiles),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row for #%d: %w", pr.Number, err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
