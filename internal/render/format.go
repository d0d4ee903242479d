// Package render produces the text, JSON and CSV representations of a
// month's analytics.
package render

import (
	"fmt"
	"time"
)

// FormatDuration renders a duration as "3d 4h", "4h 10m" or "10m" depending
// on magnitude.
func FormatDuration(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatMonth renders the YYYY-MM label of a timestamp.
func FormatMonth(t time.Time) string {
	return t.Format("2006-01")
}

// FormatFrequency renders PRs-per-week with one decimal.
func FormatFrequency(freq float64) string {
	return fmt.Sprintf("%.1f/week", freq)
}

// FormatDateShort renders "Jan 02".
func FormatDateShort(t time.Time) string {
	return t.Format("Jan 02")
}

// FormatDateRangeShort renders "Jan 02 - Jan 08".
func FormatDateRangeShort(start, end time.Time) string {
	return fmt.Sprintf("%s - %s", FormatDateShort(start), FormatDateShort(end))
}
