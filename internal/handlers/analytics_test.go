package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"

	"postdeck/internal/store"
	"postdeck/pkg/cache"
)

func setupAnalyticsRouter(posts PostStore, summaryCache *cache.Cache) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	logger, _ := test.NewNullLogger()
	handler := NewAnalyticsHandler(posts, summaryCache, logger)
	router.GET("/api/analytics/summary", handler.Summary)
	return router
}

func getSummary(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	var body map[string]any
	json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestSummaryCountsByStatus(t *testing.T) {
	posts := newPostStoreStub()
	now := time.Now()
	posts.CreatePost(context.Background(), store.Post{Content: "a", Date: now, Platforms: []string{"linkedin"}, Status: store.StatusScheduled})
	posts.CreatePost(context.Background(), store.Post{Content: "b", Date: now, Platforms: []string{"facebook"}, Status: store.StatusSent})
	router := setupAnalyticsRouter(posts, nil)

	w, body := getSummary(t, router, "/api/analytics/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	totals := body["totals"].(map[string]any)
	if totals["total"].(float64) != 2 || totals["published"].(float64) != 1 {
		t.Fatalf("unexpected totals: %v", totals)
	}
}

func TestSummaryRejectsBadRange(t *testing.T) {
	router := setupAnalyticsRouter(newPostStoreStub(), nil)

	for _, path := range []string{
		"/api/analytics/summary?days=0",
		"/api/analytics/summary?days=366",
		"/api/analytics/summary?days=abc",
	} {
		w, _ := getSummary(t, router, path)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", path, w.Code)
		}
	}
}

func TestSummaryUsesCache(t *testing.T) {
	posts := newPostStoreStub()
	posts.CreatePost(context.Background(), store.Post{Content: "a", Date: time.Now(), Platforms: []string{"linkedin"}})
	summaryCache := cache.New(cache.Options{TTL: time.Minute, MaxEntries: 8}, cache.MetricsHooks{})
	router := setupAnalyticsRouter(posts, summaryCache)

	_, first := getSummary(t, router, "/api/analytics/summary")

	// Mutate behind the cache; the second read must still see the
	// cached aggregate.
	posts.CreatePost(context.Background(), store.Post{Content: "b", Date: time.Now(), Platforms: []string{"linkedin"}})
	_, second := getSummary(t, router, "/api/analytics/summary")

	firstTotal := first["totals"].(map[string]any)["total"].(float64)
	secondTotal := second["totals"].(map[string]any)["total"].(float64)
	if firstTotal != secondTotal {
		t.Fatalf("cache not used: first=%v second=%v", firstTotal, secondTotal)
	}

	// A different window is a different key.
	_, other := getSummary(t, router, "/api/analytics/summary?days=7")
	if other["range_days"].(float64) != 7 {
		t.Fatalf("unexpected range: %v", other["range_days"])
	}
}
