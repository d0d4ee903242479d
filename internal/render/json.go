package render

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/sawaday/gh-log/internal/domain"
)

// The JSON layer owns its own DTOs so the export shape stays stable even when
// the domain structs grow fields; durations are emitted in whole seconds plus
// a human-readable form.

type jsonPR struct {
	Number          int    `json:"number"`
	Title           string `json:"title"`
	Body            string `json:"body,omitempty"`
	Repo            string `json:"repository"`
	CreatedAt       string `json:"created_at"`
	LeadTimeSeconds int64  `json:"lead_time_seconds"`
	LeadTime        string `json:"lead_time"`
	Size            string `json:"size"`
	Additions       int    `json:"additions"`
	Deletions       int    `json:"deletions"`
	ChangedFiles    int    `json:"changed_files"`
}

type jsonWeek struct {
	WeekNum            int      `json:"week_num"`
	Start              string   `json:"week_start"`
	End                string   `json:"week_end"`
	PRCount            int      `json:"pr_count"`
	AvgLeadTimeSeconds int64    `json:"avg_lead_time_seconds"`
	AvgLeadTime        string   `json:"avg_lead_time"`
	PRs                []jsonPR `json:"prs"`
}

type jsonRepo struct {
	Name               string                  `json:"name"`
	PRCount            int                     `json:"pr_count"`
	AvgLeadTimeSeconds int64                   `json:"avg_lead_time_seconds"`
	AvgLeadTime        string                  `json:"avg_lead_time"`
	Sizes              domain.SizeDistribution `json:"sizes"`
	PRs                []jsonPR                `json:"prs"`
}

type jsonReviewer struct {
	Login   string `json:"login"`
	PRCount int    `json:"pr_count"`
}

type jsonMonth struct {
	Month                  string                  `json:"month"`
	TotalPRs               int                     `json:"total_prs"`
	AvgLeadTimeSeconds     int64                   `json:"avg_lead_time_seconds"`
	AvgLeadTime            string                  `json:"avg_lead_time"`
	MedianLeadTimeSeconds  int64                   `json:"median_lead_time_seconds"`
	LongestLeadTimeSeconds int64                   `json:"longest_lead_time_seconds"`
	FrequencyPerWeek       float64                 `json:"frequency_per_week"`
	Sizes                  domain.SizeDistribution `json:"sizes"`
	ReviewedCount          int                     `json:"reviewed_count"`
	Weeks                  []jsonWeek              `json:"weeks"`
	Repos                  []jsonRepo              `json:"repos"`
	Reviewers              []jsonReviewer          `json:"reviewers"`
}

// JSON writes the pretty-printed JSON export of the month's analytics.
func JSON(w io.Writer, stats *domain.MonthStats) error {
	out := jsonMonth{
		Month:                  FormatMonth(stats.MonthStart),
		TotalPRs:               stats.TotalPRs,
		AvgLeadTimeSeconds:     seconds(stats.AvgLeadTime),
		AvgLeadTime:            FormatDuration(stats.AvgLeadTime),
		MedianLeadTimeSeconds:  seconds(stats.MedianLeadTime),
		LongestLeadTimeSeconds: seconds(stats.LongestLeadTime),
		FrequencyPerWeek:       stats.Frequency,
		Sizes:                  stats.Sizes,
		ReviewedCount:          stats.ReviewedCount,
		Weeks:                  make([]jsonWeek, 0, len(stats.Weeks)),
		Repos:                  make([]jsonRepo, 0, len(stats.Repos)),
		Reviewers:              make([]jsonReviewer, 0, len(stats.Reviewers)),
	}

	for _, week := range stats.Weeks {
		out.Weeks = append(out.Weeks, jsonWeek{
			WeekNum:            week.WeekNum,
			Start:              week.Start.Format(time.RFC3339),
			End:                week.End.Format(time.RFC3339),
			PRCount:            week.PRCount,
			AvgLeadTimeSeconds: seconds(week.AvgLeadTime),
			AvgLeadTime:        FormatDuration(week.AvgLeadTime),
			PRs:                toJSONPRs(week.PRs),
		})
	}
	for _, repo := range stats.Repos {
		out.Repos = append(out.Repos, jsonRepo{
			Name:               repo.Name,
			PRCount:            repo.PRCount,
			AvgLeadTimeSeconds: seconds(repo.AvgLeadTime),
			AvgLeadTime:        FormatDuration(repo.AvgLeadTime),
			Sizes:              repo.Sizes,
			PRs:                toJSONPRs(repo.PRs),
		})
	}
	for _, reviewer := range stats.Reviewers {
		out.Reviewers = append(out.Reviewers, jsonReviewer{Login: reviewer.Login, PRCount: reviewer.PRCount})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func toJSONPRs(prs []domain.PRDetail) []jsonPR {
	out := make([]jsonPR, len(prs))
	for i, pr := range prs {
		out[i] = jsonPR{
			Number:          pr.Number,
			Title:           pr.Title,
			Body:            pr.Body,
			Repo:            pr.Repo,
			CreatedAt:       pr.CreatedAt.Format(time.RFC3339),
			LeadTimeSeconds: seconds(pr.LeadTime),
			LeadTime:        FormatDuration(pr.LeadTime),
			Size:            string(pr.Size),
			Additions:       pr.Additions,
			Deletions:       pr.Deletions,
			ChangedFiles:    pr.ChangedFiles,
		}
	}
	return out
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
