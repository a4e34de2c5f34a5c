package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupContentRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewContentHandler()
	router.GET("/api/platforms", handler.Platforms)
	router.POST("/api/content/adapt", handler.Adapt)
	router.POST("/api/content/quality", handler.Quality)
	router.POST("/api/content/virality", handler.Virality)
	return router
}

func postJSON(router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestPlatformsLists(t *testing.T) {
	router := setupContentRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/platforms", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Platforms []struct {
			ID       string `json:"id"`
			MaxChars int    `json:"max_chars"`
		} `json:"platforms"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Platforms) != 5 {
		t.Fatalf("expected 5 platforms, got %d", len(resp.Platforms))
	}
	if resp.Platforms[1].ID != "twitter" || resp.Platforms[1].MaxChars != 280 {
		t.Fatalf("unexpected platform order: %+v", resp.Platforms)
	}
}

func TestAdaptTruncatesForTwitter(t *testing.T) {
	router := setupContentRouter()

	w := postJSON(router, "/api/content/adapt", map[string]any{
		"content":   strings.Repeat("a", 400),
		"platforms": []string{"twitter", "linkedin"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Results map[string]struct {
			Content  string `json:"content"`
			Length   int    `json:"length"`
			MaxChars int    `json:"max_chars"`
			Status   string `json:"status"`
		} `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	tw := resp.Results["twitter"]
	if tw.Length != 280 || !strings.HasSuffix(tw.Content, "...") {
		t.Fatalf("twitter adaptation wrong: length=%d content=%q", tw.Length, tw.Content)
	}
	if tw.Status != "danger" {
		t.Fatalf("expected danger at the limit, got %s", tw.Status)
	}

	li := resp.Results["linkedin"]
	if li.Length != 400 || li.Status != "ok" {
		t.Fatalf("linkedin should be untouched: %+v", li)
	}
}

func TestAdaptRequiresPlatforms(t *testing.T) {
	router := setupContentRouter()

	if w := postJSON(router, "/api/content/adapt", map[string]any{"content": "x", "platforms": []string{}}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestQualityEndpoint(t *testing.T) {
	router := setupContentRouter()

	w := postJSON(router, "/api/content/quality", map[string]any{
		"content":   "Découvrez notre nouvelle gamme de produits artisanaux dès aujourd'hui! #artisanat #local 🎉",
		"has_image": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Score    int    `json:"score"`
		Label    string `json:"label"`
		Criteria []any  `json:"criteria"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Score != 100 || resp.Label != "Excellent" {
		t.Fatalf("expected perfect score, got %d %q", resp.Score, resp.Label)
	}
	if len(resp.Criteria) != 5 {
		t.Fatalf("expected 5 criteria, got %d", len(resp.Criteria))
	}
}

func TestViralityEndpoint(t *testing.T) {
	router := setupContentRouter()

	w := postJSON(router, "/api/content/virality", map[string]any{
		"script":    "3 astuces pour réussir",
		"subtitles": map[string]any{"enabled": true},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Score int    `json:"score"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Score != 55 || resp.Label != "Bon potentiel" {
		t.Fatalf("unexpected score: %d %q", resp.Score, resp.Label)
	}
}
