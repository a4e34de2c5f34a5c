package handlers

import (
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"postdeck/internal/platform"
	"postdeck/internal/scoring"
)

// ContentHandler serves the pure content tooling: platform profiles,
// per-platform adaptation previews and the two readiness scores.
type ContentHandler struct{}

func NewContentHandler() *ContentHandler {
	return &ContentHandler{}
}

// Platforms lists the supported platform profiles.
func (h *ContentHandler) Platforms(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"platforms": platform.Profiles()})
}

type adaptRequest struct {
	Content   string   `json:"content" binding:"required"`
	Platforms []string `json:"platforms" binding:"required,min=1"`
}

type adaptedPreview struct {
	Content      string             `json:"content"`
	Length       int                `json:"length"`
	MaxChars     int                `json:"max_chars"`
	Status       platform.CharStatus `json:"status"`
	HashtagCount int                `json:"hashtag_count"`
}

// Adapt rewrites content for each requested platform and reports the
// character budget standing of the result.
func (h *ContentHandler) Adapt(c *gin.Context) {
	var req adaptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results := make(map[string]adaptedPreview, len(req.Platforms))
	for _, id := range req.Platforms {
		adapted := platform.Adapt(req.Content, id)
		length := utf8.RuneCountInString(adapted)

		preview := adaptedPreview{
			Content:      adapted,
			Length:       length,
			HashtagCount: platform.CountHashtags(adapted),
		}
		if profile, ok := platform.Lookup(id); ok {
			preview.MaxChars = profile.MaxChars
			preview.Status = platform.CharacterStatus(length, profile.MaxChars)
		} else {
			preview.Status = platform.StatusOK
		}
		results[id] = preview
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

type qualityRequest struct {
	Content  string `json:"content"`
	HasImage bool   `json:"has_image"`
}

// Quality scores a draft against the five-point readiness rubric.
func (h *ContentHandler) Quality(c *gin.Context) {
	var req qualityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, scoring.ScoreContent(req.Content, req.HasImage))
}

// Virality estimates the engagement potential of a video project.
func (h *ContentHandler) Virality(c *gin.Context) {
	var req scoring.VideoProject
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score := scoring.ScoreVideo(req)
	c.JSON(http.StatusOK, gin.H{
		"score": score,
		"label": scoring.VideoScoreLabel(score),
	})
}
