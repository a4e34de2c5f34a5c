// Package analytics aggregates post counts for the dashboard: totals
// by status, platform distribution and a posts-per-day series over a
// trailing window.
package analytics

import (
	"time"

	"postdeck/internal/store"
)

// Totals are the headline metrics. Published folds in both the
// published and sent statuses.
type Totals struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Published int `json:"published"`
	Draft     int `json:"draft"`
}

// SeriesPoint is one bucket of the posts-over-time chart.
type SeriesPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Summary is everything the dashboard needs in one payload.
type Summary struct {
	Totals      Totals         `json:"totals"`
	ByPlatform  map[string]int `json:"by_platform"`
	ByStatus    map[string]int `json:"by_status"`
	PostsPerDay []SeriesPoint  `json:"posts_per_day"`
	RangeDays   int            `json:"range_days"`
}

// Summarize computes the dashboard aggregates over the posts whose
// scheduled date falls within the last rangeDays days.
func Summarize(posts []store.Post, rangeDays int, now time.Time) Summary {
	if rangeDays <= 0 {
		rangeDays = 30
	}
	cutoff := startOfDay(now.AddDate(0, 0, -rangeDays))

	filtered := make([]store.Post, 0, len(posts))
	for _, p := range posts {
		if p.Date.After(cutoff) {
			filtered = append(filtered, p)
		}
	}

	return Summary{
		Totals:      ComputeTotals(filtered),
		ByPlatform:  CountByPlatform(filtered),
		ByStatus:    CountByStatus(filtered),
		PostsPerDay: PostsPerDay(filtered, rangeDays, now),
		RangeDays:   rangeDays,
	}
}

// ComputeTotals counts posts per headline status.
func ComputeTotals(posts []store.Post) Totals {
	totals := Totals{Total: len(posts)}
	for _, p := range posts {
		switch p.Status {
		case store.StatusScheduled:
			totals.Scheduled++
		case store.StatusPublished, store.StatusSent:
			totals.Published++
		case "draft":
			totals.Draft++
		}
	}
	return totals
}

// CountByPlatform counts target platform occurrences. A post on three
// platforms counts once per platform.
func CountByPlatform(posts []store.Post) map[string]int {
	counts := map[string]int{}
	for _, p := range posts {
		for _, platform := range p.Platforms {
			counts[platform]++
		}
	}
	return counts
}

// CountByStatus counts posts per status, folding sent into published.
func CountByStatus(posts []store.Post) map[string]int {
	counts := map[string]int{}
	for _, p := range posts {
		status := p.Status
		if status == store.StatusSent {
			status = store.StatusPublished
		}
		counts[status]++
	}
	return counts
}

// PostsPerDay buckets posts by calendar day over the trailing window,
// including empty days so the chart has a continuous axis.
func PostsPerDay(posts []store.Post, rangeDays int, now time.Time) []SeriesPoint {
	perDay := map[string]int{}
	for _, p := range posts {
		perDay[p.Date.Format("2006-01-02")]++
	}

	series := make([]SeriesPoint, 0, rangeDays+1)
	for d := rangeDays; d >= 0; d-- {
		day := now.AddDate(0, 0, -d).Format("2006-01-02")
		series = append(series, SeriesPoint{Date: day, Count: perDay[day]})
	}
	return series
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
