package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"postdeck/internal/freepik"
	"postdeck/internal/tasks"
	"postdeck/pkg/logging"
)

// MediaHandler fronts the Freepik generation API. Task creation
// returns immediately; status endpoints either poll once or, with
// ?wait=true, block until the task reaches a terminal status.
type MediaHandler struct {
	media   MediaGenerator
	poller  *tasks.Poller
	logger  logging.Logger
	metrics *PostMetrics
}

func NewMediaHandler(media MediaGenerator, poller *tasks.Poller, logger logging.Logger, metrics *PostMetrics) *MediaHandler {
	return &MediaHandler{media: media, poller: poller, logger: logger, metrics: metrics}
}

func (h *MediaHandler) GenerateImage(c *gin.Context) {
	var req freepik.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		h.metrics.IncMediaTask("image", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre manquant: prompt est requis"})
		return
	}
	if !h.media.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Clé API Freepik non configurée"})
		return
	}

	task, err := h.media.CreateImageTask(c.Request.Context(), req)
	if err != nil {
		h.metrics.IncMediaTask("image", "error")
		h.logger.WithError(err).Error("Image task creation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur Freepik"})
		return
	}

	h.metrics.IncMediaTask("image", "created")
	c.JSON(http.StatusOK, gin.H{
		"task_id": task.ID,
		"status":  task.Status,
		"message": "Génération en cours...",
	})
}

func (h *MediaHandler) ImageTaskStatus(c *gin.Context) {
	taskID := c.Param("taskId")
	if !h.media.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Clé API Freepik non configurée"})
		return
	}

	if c.Query("wait") == "true" {
		h.waitForTask(c, taskID, "image", func() (freepik.TaskResult, error) {
			return h.media.GetImageTask(c.Request.Context(), taskID)
		})
		return
	}

	result, err := h.media.GetImageTask(c.Request.Context(), taskID)
	if err != nil {
		h.logger.WithError(err).WithField("task_id", taskID).Error("Image task check failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la vérification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": result.Status, "imageUrl": result.ImageURL})
}

func (h *MediaHandler) GenerateVideo(c *gin.Context) {
	var req freepik.VideoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == "" {
		h.metrics.IncMediaTask("video", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Paramètre manquant: prompt est requis"})
		return
	}
	if !h.media.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Clé API Freepik non configurée"})
		return
	}

	task, err := h.media.CreateVideoTask(c.Request.Context(), req)
	if errors.Is(err, freepik.ErrImageRequired) {
		h.metrics.IncMediaTask("video", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Kling v2 nécessite une image de référence"})
		return
	}
	if err != nil {
		h.metrics.IncMediaTask("video", "error")
		h.logger.WithError(err).Error("Video task creation failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur Freepik"})
		return
	}

	h.metrics.IncMediaTask("video", "created")
	c.JSON(http.StatusOK, gin.H{
		"task_id": task.ID,
		"status":  task.Status,
		"model":   task.Model,
		"message": "Génération vidéo en cours...",
	})
}

func (h *MediaHandler) VideoTaskStatus(c *gin.Context) {
	taskID := c.Param("taskId")
	model := c.Query("model")
	if !h.media.Configured() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Clé API Freepik non configurée"})
		return
	}

	if c.Query("wait") == "true" {
		h.waitForTask(c, taskID, "video", func() (freepik.TaskResult, error) {
			return h.media.GetVideoTask(c.Request.Context(), taskID, model)
		})
		return
	}

	result, err := h.media.GetVideoTask(c.Request.Context(), taskID, model)
	if err != nil {
		h.logger.WithError(err).WithField("task_id", taskID).Error("Video task check failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la vérification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": result.Status, "videoUrl": result.VideoURL})
}

func (h *MediaHandler) waitForTask(c *gin.Context, taskID, kind string, check func() (freepik.TaskResult, error)) {
	result, err := tasks.Wait(c.Request.Context(), h.poller, taskID, func(_ context.Context) (freepik.TaskResult, bool, error) {
		res, err := check()
		if err != nil {
			return freepik.TaskResult{}, false, err
		}
		done := freepik.Succeeded(res.Status) || freepik.Failed(res.Status)
		return res, done, nil
	})
	if errors.Is(err, tasks.ErrExhausted) {
		h.metrics.IncMediaTask(kind, "abandoned")
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "La génération prend trop de temps, réessayez plus tard"})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Erreur lors de la vérification"})
		return
	}

	if freepik.Failed(result.Status) {
		h.metrics.IncMediaTask(kind, "failed")
	} else {
		h.metrics.IncMediaTask(kind, "ok")
	}
	if kind == "video" {
		c.JSON(http.StatusOK, gin.H{"status": result.Status, "videoUrl": result.VideoURL})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": result.Status, "imageUrl": result.ImageURL})
}
