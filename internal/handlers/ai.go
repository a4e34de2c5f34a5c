package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"postdeck/internal/assistant"
	"postdeck/pkg/cache"
	"postdeck/pkg/logging"
)

type AIHandler struct {
	copywriter Copywriter
	dates      *cache.Cache
	logger     logging.Logger
	metrics    *PostMetrics
}

// NewAIHandler builds the assistant endpoints. datesCache may be nil;
// when set, important-dates responses are cached per month and year,
// since the answer only changes when the calendar does.
func NewAIHandler(copywriter Copywriter, datesCache *cache.Cache, logger logging.Logger, metrics *PostMetrics) *AIHandler {
	return &AIHandler{copywriter: copywriter, dates: datesCache, logger: logger, metrics: metrics}
}

func (h *AIHandler) GenerateCaption(c *gin.Context) {
	var req struct {
		Subject  string   `json:"subject" binding:"required"`
		Tone     string   `json:"tone" binding:"required"`
		Length   string   `json:"length" binding:"required"`
		Keywords []string `json:"keywords"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.IncAI("generate_caption", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètres manquants: subject, tone et length sont requis"})
		return
	}

	captions, err := h.copywriter.GenerateCaptions(c.Request.Context(), assistant.CaptionRequest{
		Subject:  req.Subject,
		Tone:     req.Tone,
		Length:   req.Length,
		Keywords: req.Keywords,
	})
	if err != nil {
		h.metrics.IncAI("generate_caption", "error")
		h.logger.WithError(err).Error("Caption generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération des captions"})
		return
	}

	h.metrics.IncAI("generate_caption", "ok")
	c.JSON(http.StatusOK, gin.H{"captions": captions})
}

func (h *AIHandler) ImproveText(c *gin.Context) {
	var req struct {
		Text   string `json:"text" binding:"required"`
		Action string `json:"action" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.IncAI("improve_text", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètres manquants: text et action sont requis"})
		return
	}

	improved, err := h.copywriter.ImproveText(c.Request.Context(), req.Text, req.Action)
	if errors.Is(err, assistant.ErrUnknownAction) {
		h.metrics.IncAI("improve_text", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action inconnue"})
		return
	}
	if err != nil {
		h.metrics.IncAI("improve_text", "error")
		h.logger.WithError(err).Error("Text improvement failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'amélioration du texte"})
		return
	}

	h.metrics.IncAI("improve_text", "ok")
	c.JSON(http.StatusOK, gin.H{"improved": improved})
}

func (h *AIHandler) SuggestHashtags(c *gin.Context) {
	var req struct {
		Content  string `json:"content" binding:"required"`
		Platform string `json:"platform" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.IncAI("suggest_hashtags", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètres manquants: content et platform sont requis"})
		return
	}

	hashtags, err := h.copywriter.SuggestHashtags(c.Request.Context(), req.Content, req.Platform)
	if err != nil {
		h.metrics.IncAI("suggest_hashtags", "error")
		h.logger.WithError(err).Error("Hashtag suggestion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suggestion de hashtags"})
		return
	}

	h.metrics.IncAI("suggest_hashtags", "ok")
	c.JSON(http.StatusOK, gin.H{"hashtags": hashtags})
}

func (h *AIHandler) BestTime(c *gin.Context) {
	var req struct {
		Platform string `json:"platform" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre manquant: platform est requis"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"times": assistant.BestTimes(req.Platform)})
}

func (h *AIHandler) ImportantDates(c *gin.Context) {
	var req struct {
		Month int `json:"month" binding:"required"`
		Year  int `json:"year" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.IncAI("important_dates", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètres manquants: month et year sont requis"})
		return
	}
	if req.Month < 1 || req.Month > 12 {
		h.metrics.IncAI("important_dates", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le mois doit être entre 1 et 12"})
		return
	}

	dates, err := h.importantDates(c.Request.Context(), req.Month, req.Year)
	if err != nil {
		h.metrics.IncAI("important_dates", "error")
		h.logger.WithError(err).Error("Important dates lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des dates importantes"})
		return
	}

	h.metrics.IncAI("important_dates", "ok")
	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

func (h *AIHandler) importantDates(ctx context.Context, month, year int) ([]assistant.ImportantDate, error) {
	if h.dates == nil {
		return h.copywriter.ImportantDates(ctx, month, year)
	}

	key := fmt.Sprintf("dates:%d:%d", year, month)
	val, ok, err := h.dates.Get(ctx, key, func(ctx context.Context, _ string) (interface{}, bool, error) {
		dates, err := h.copywriter.ImportantDates(ctx, month, year)
		if err != nil {
			return nil, false, err
		}
		return dates, true, nil
	})
	if err != nil || !ok {
		return nil, err
	}
	return val.([]assistant.ImportantDate), nil
}

func (h *AIHandler) GeneratePostForDate(c *gin.Context) {
	var req struct {
		Date        string `json:"date" binding:"required"`
		Event       string `json:"event" binding:"required"`
		Description string `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.IncAI("generate_post_for_date", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètres manquants: date, event et description sont requis"})
		return
	}

	post, err := h.copywriter.GeneratePostForDate(c.Request.Context(), req.Date, req.Event, req.Description)
	if err != nil {
		h.metrics.IncAI("generate_post_for_date", "error")
		h.logger.WithError(err).Error("Event post generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la génération du post"})
		return
	}

	h.metrics.IncAI("generate_post_for_date", "ok")
	c.JSON(http.StatusOK, post)
}

func (h *AIHandler) ParseVideos(c *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.IncAI("parse_videos", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Texte requis"})
		return
	}

	videos, err := h.copywriter.ParseVideos(c.Request.Context(), req.Text)
	if err != nil {
		h.metrics.IncAI("parse_videos", "error")
		h.logger.WithError(err).Error("Video parsing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur de parsing"})
		return
	}

	h.metrics.IncAI("parse_videos", "ok")
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}
