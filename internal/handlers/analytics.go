package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"postdeck/internal/analytics"
	"postdeck/pkg/cache"
	"postdeck/pkg/logging"
)

type AnalyticsHandler struct {
	posts   PostStore
	summary *cache.Cache
	logger  logging.Logger
}

// NewAnalyticsHandler builds the analytics endpoint. summaryCache may be
// nil, in which case every request recomputes from the store.
func NewAnalyticsHandler(posts PostStore, summaryCache *cache.Cache, logger logging.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{posts: posts, summary: summaryCache, logger: logger}
}

// Summary aggregates the dashboard metrics over a trailing window,
// 30 days unless ?days= says otherwise.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 365 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days doit être entre 1 et 365"})
			return
		}
		days = parsed
	}

	summary, err := h.summarize(c.Request.Context(), days)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list posts for analytics")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *AnalyticsHandler) summarize(ctx context.Context, days int) (analytics.Summary, error) {
	compute := func(ctx context.Context) (analytics.Summary, error) {
		posts, err := h.posts.ListPosts(ctx)
		if err != nil {
			return analytics.Summary{}, err
		}
		return analytics.Summarize(posts, days, time.Now()), nil
	}

	if h.summary == nil {
		return compute(ctx)
	}

	key := fmt.Sprintf("summary:%d", days)
	val, ok, err := h.summary.Get(ctx, key, func(ctx context.Context, _ string) (interface{}, bool, error) {
		summary, err := compute(ctx)
		if err != nil {
			return nil, false, err
		}
		return summary, true, nil
	})
	if err != nil || !ok {
		return analytics.Summary{}, err
	}
	return val.(analytics.Summary), nil
}
