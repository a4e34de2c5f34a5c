// Package importer bulk-loads drafts from pasted JSON. The batch is
// best-effort: bad items are skipped and reported, the rest go through.
package importer

import (
	"context"
	"strings"
	"time"

	"postdeck/internal/store"
	"postdeck/pkg/logging"
)

// Item is one entry of an import batch. Either platforms or the
// singular platform may be set; date is optional.
type Item struct {
	Content   string   `json:"content"`
	Platforms []string `json:"platforms,omitempty"`
	Platform  string   `json:"platform,omitempty"`
	Date      string   `json:"date,omitempty"`
}

// Outcome reports what happened to one item, by batch position.
type Outcome struct {
	Index  int    `json:"index"`
	PostID int    `json:"post_id,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Result summarizes an import batch.
type Result struct {
	Imported int       `json:"imported"`
	Outcomes []Outcome `json:"outcomes"`
}

// PostCreator is the slice of the store the importer needs.
type PostCreator interface {
	CreatePost(ctx context.Context, p store.Post) (store.Post, error)
}

// Importer turns loose items into scheduled posts.
type Importer struct {
	posts  PostCreator
	logger logging.Logger
	now    func() time.Time
}

func New(posts PostCreator, logger logging.Logger) *Importer {
	return &Importer{posts: posts, logger: logger, now: time.Now}
}

// Import creates a post per valid item. Items without content and
// items the store rejects are skipped; the loop never aborts.
func (i *Importer) Import(ctx context.Context, items []Item) Result {
	result := Result{Outcomes: make([]Outcome, 0, len(items))}

	for idx, item := range items {
		outcome := Outcome{Index: idx}

		if strings.TrimSpace(item.Content) == "" {
			outcome.Error = "contenu manquant"
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}

		post, err := i.posts.CreatePost(ctx, store.Post{
			Content:   item.Content,
			Date:      i.scheduleDate(item.Date),
			Platforms: normalizePlatforms(item),
			Status:    store.StatusScheduled,
		})
		if err != nil {
			i.logger.WithError(err).WithField("index", idx).Warn("Import item failed")
			outcome.Error = err.Error()
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}

		outcome.PostID = post.ID
		result.Outcomes = append(result.Outcomes, outcome)
		result.Imported++
	}

	return result
}

// scheduleDate parses the item date, falling back to today, and pins
// the time of day to 10:00.
func (i *Importer) scheduleDate(raw string) time.Time {
	day := i.now()
	if raw != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, raw); err == nil {
				day = parsed
				break
			}
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, day.Location())
}

func normalizePlatforms(item Item) []string {
	var platforms []string
	switch {
	case len(item.Platforms) > 0:
		platforms = item.Platforms
	case item.Platform != "":
		platforms = []string{item.Platform}
	default:
		return []string{"linkedin"}
	}

	out := make([]string, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, strings.ToLower(p))
	}
	return out
}
