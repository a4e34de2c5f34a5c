package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postdeck/internal/store"
)

var now = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func post(daysAgo int, status string, platforms ...string) store.Post {
	return store.Post{
		Content:   "x",
		Date:      now.AddDate(0, 0, -daysAgo),
		Platforms: platforms,
		Status:    status,
	}
}

func TestComputeTotalsFoldsSentIntoPublished(t *testing.T) {
	totals := ComputeTotals([]store.Post{
		post(1, store.StatusScheduled, "linkedin"),
		post(2, store.StatusSent, "linkedin"),
		post(3, store.StatusPublished, "facebook"),
		post(4, "draft", "instagram"),
	})

	assert.Equal(t, 4, totals.Total)
	assert.Equal(t, 1, totals.Scheduled)
	assert.Equal(t, 2, totals.Published)
	assert.Equal(t, 1, totals.Draft)
}

func TestCountByPlatformCountsEachTarget(t *testing.T) {
	counts := CountByPlatform([]store.Post{
		post(1, store.StatusScheduled, "linkedin", "facebook"),
		post(2, store.StatusScheduled, "linkedin"),
	})

	assert.Equal(t, 2, counts["linkedin"])
	assert.Equal(t, 1, counts["facebook"])
	assert.Zero(t, counts["instagram"])
}

func TestCountByStatus(t *testing.T) {
	counts := CountByStatus([]store.Post{
		post(1, store.StatusSent, "linkedin"),
		post(2, store.StatusPublished, "linkedin"),
		post(3, store.StatusScheduled, "linkedin"),
	})

	assert.Equal(t, 2, counts[store.StatusPublished])
	assert.Equal(t, 1, counts[store.StatusScheduled])
	assert.Zero(t, counts[store.StatusSent])
}

func TestPostsPerDayIncludesEmptyDays(t *testing.T) {
	series := PostsPerDay([]store.Post{
		post(0, store.StatusScheduled, "linkedin"),
		post(0, store.StatusScheduled, "linkedin"),
		post(2, store.StatusScheduled, "linkedin"),
	}, 3, now)

	require.Len(t, series, 4)
	assert.Equal(t, SeriesPoint{Date: "2026-08-28", Count: 0}, series[0])
	assert.Equal(t, SeriesPoint{Date: "2026-08-29", Count: 1}, series[1])
	assert.Equal(t, SeriesPoint{Date: "2026-08-30", Count: 0}, series[2])
	assert.Equal(t, SeriesPoint{Date: "2026-08-31", Count: 2}, series[3])
}

func TestSummarizeFiltersByWindow(t *testing.T) {
	summary := Summarize([]store.Post{
		post(1, store.StatusScheduled, "linkedin"),
		post(40, store.StatusPublished, "facebook"),
	}, 30, now)

	assert.Equal(t, 1, summary.Totals.Total)
	assert.Equal(t, 30, summary.RangeDays)
	assert.Zero(t, summary.ByPlatform["facebook"])
	assert.Len(t, summary.PostsPerDay, 31)
}

func TestSummarizeDefaultsRange(t *testing.T) {
	summary := Summarize(nil, 0, now)
	assert.Equal(t, 30, summary.RangeDays)
	assert.Zero(t, summary.Totals.Total)
}
