package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"postdeck/internal/importer"
	"postdeck/internal/store"
	"postdeck/pkg/logging"
)

type PostsHandler struct {
	posts      PostStore
	dispatcher Dispatcher
	importer   BatchImporter
	logger     logging.Logger
	metrics    *PostMetrics
}

func NewPostsHandler(posts PostStore, dispatcher Dispatcher, imp BatchImporter, logger logging.Logger, metrics *PostMetrics) *PostsHandler {
	return &PostsHandler{
		posts:      posts,
		dispatcher: dispatcher,
		importer:   imp,
		logger:     logger,
		metrics:    metrics,
	}
}

type postRequest struct {
	Content   string   `json:"content" binding:"required"`
	Image     string   `json:"image"`
	Video     string   `json:"video"`
	Type      string   `json:"type"`
	Date      string   `json:"date" binding:"required"`
	Platforms []string `json:"platforms" binding:"required,min=1"`
	Status    string   `json:"status"`
}

// parsePostDate accepts full timestamps and bare calendar dates.
func parsePostDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unrecognized date format")
}

func (h *PostsHandler) List(c *gin.Context) {
	posts, err := h.posts.ListPosts(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to list posts")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *PostsHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("post_id", id).Error("Failed to fetch post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *PostsHandler) Create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.IncPostOp("create", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := parsePostDate(req.Date)
	if err != nil {
		h.metrics.IncPostOp("create", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	post, err := h.posts.CreatePost(c.Request.Context(), store.Post{
		Content:   req.Content,
		Image:     req.Image,
		Video:     req.Video,
		Type:      req.Type,
		Date:      date,
		Platforms: req.Platforms,
		Status:    req.Status,
	})
	if err != nil {
		h.metrics.IncPostOp("create", "error")
		h.logger.WithError(err).Error("Failed to create post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	// The automation scenario picks up both scheduled and publish-now posts.
	if post.Status == store.StatusScheduled || post.Status == store.StatusSent {
		h.dispatcher.SendAsync(post)
		h.metrics.IncWebhook("outbound", "dispatched")
	}

	h.metrics.IncPostOp("create", "ok")
	c.JSON(http.StatusCreated, post)
}

func (h *PostsHandler) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req struct {
		Content   *string  `json:"content"`
		Image     *string  `json:"image"`
		Video     *string  `json:"video"`
		Type      *string  `json:"type"`
		Date      *string  `json:"date"`
		Platforms []string `json:"platforms"`
		Status    *string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.IncPostOp("update", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	upd := store.PostUpdate{
		Content:   req.Content,
		Image:     req.Image,
		Video:     req.Video,
		Type:      req.Type,
		Platforms: req.Platforms,
		Status:    req.Status,
	}
	if req.Date != nil {
		date, err := parsePostDate(*req.Date)
		if err != nil {
			h.metrics.IncPostOp("update", "bad_request")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
			return
		}
		upd.Date = &date
	}

	post, err := h.posts.UpdatePost(c.Request.Context(), id, upd)
	if errors.Is(err, store.ErrNotFound) {
		h.metrics.IncPostOp("update", "not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		h.metrics.IncPostOp("update", "error")
		h.logger.WithError(err).WithField("post_id", id).Error("Failed to update post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	h.metrics.IncPostOp("update", "ok")
	c.JSON(http.StatusOK, post)
}

func (h *PostsHandler) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	err = h.posts.DeletePost(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.metrics.IncPostOp("delete", "not_found")
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		h.metrics.IncPostOp("delete", "error")
		h.logger.WithError(err).WithField("post_id", id).Error("Failed to delete post")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	h.metrics.IncPostOp("delete", "ok")
	c.Status(http.StatusNoContent)
}

// SendToMake dispatches one post to the automation webhook on demand
// and marks it sent on success.
func (h *PostsHandler) SendToMake(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID de post invalide"})
		return
	}

	post, err := h.posts.GetPost(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post non trouvé"})
		return
	}
	if err != nil {
		h.logger.WithError(err).WithField("post_id", id).Error("Failed to fetch post")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur interne"})
		return
	}

	if err := h.dispatcher.Send(c.Request.Context(), post); err != nil {
		h.metrics.IncWebhook("outbound", "error")
		h.logger.WithError(err).WithField("post_id", id).Error("Webhook dispatch failed")
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "Erreur de communication avec Make.com"})
		return
	}

	status := store.StatusSent
	if _, err := h.posts.UpdatePost(c.Request.Context(), id, store.PostUpdate{Status: &status}); err != nil {
		h.logger.WithError(err).WithField("post_id", id).Error("Failed to mark post as sent")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur interne"})
		return
	}

	h.metrics.IncWebhook("outbound", "ok")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post envoyé à Make.com avec succès"})
}

type inboundWebhook struct {
	ID        any      `json:"id"`
	Content   string   `json:"content"`
	Platforms []string `json:"platforms"`
	Date      string   `json:"date"`
}

// Webhook handles the inbound callback from the automation. With an id
// it marks that post sent; with content, platforms and date it creates
// a new post already marked sent.
func (h *PostsHandler) Webhook(c *gin.Context) {
	var req inboundWebhook
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.IncWebhook("inbound", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Corps de requête invalide"})
		return
	}

	if req.ID != nil {
		postID, ok := webhookPostID(req.ID)
		if !ok {
			h.metrics.IncWebhook("inbound", "bad_request")
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID de post invalide"})
			return
		}

		if _, err := h.posts.GetPost(c.Request.Context(), postID); errors.Is(err, store.ErrNotFound) {
			h.metrics.IncWebhook("inbound", "not_found")
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Post non trouvé"})
			return
		} else if err != nil {
			h.logger.WithError(err).WithField("post_id", postID).Error("Webhook post lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lors du traitement de la requête"})
			return
		}

		status := store.StatusSent
		if _, err := h.posts.UpdatePost(c.Request.Context(), postID, store.PostUpdate{Status: &status}); err != nil {
			h.logger.WithError(err).WithField("post_id", postID).Error("Webhook status update failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lors du traitement de la requête"})
			return
		}

		h.metrics.IncWebhook("inbound", "ok")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post marqué comme envoyé", "postId": postID})
		return
	}

	if req.Content != "" && len(req.Platforms) > 0 && req.Date != "" {
		date, err := parsePostDate(req.Date)
		if err != nil {
			h.metrics.IncWebhook("inbound", "bad_request")
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Format de date invalide"})
			return
		}

		post, err := h.posts.CreatePost(c.Request.Context(), store.Post{
			Content:   req.Content,
			Platforms: req.Platforms,
			Date:      date,
			Status:    store.StatusSent,
		})
		if err != nil {
			h.logger.WithError(err).Error("Webhook post creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Erreur lors du traitement de la requête"})
			return
		}

		h.metrics.IncWebhook("inbound", "ok")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post créé et marqué comme envoyé", "postId": post.ID})
		return
	}

	h.metrics.IncWebhook("inbound", "bad_request")
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Données manquantes: id ou (content, platforms, date) requis"})
}

// webhookPostID tolerates ids arriving as JSON numbers or strings.
func webhookPostID(raw any) (int, bool) {
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return id, true
	}
	return 0, false
}

// Import bulk-creates posts from a JSON batch.
func (h *PostsHandler) Import(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		h.metrics.IncPostOp("import", "bad_request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corps de requête invalide"})
		return
	}

	// A single object is accepted as a batch of one.
	var items []importer.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		var single importer.Item
		if err := json.Unmarshal(raw, &single); err != nil {
			h.metrics.IncPostOp("import", "bad_request")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Corps de requête invalide"})
			return
		}
		items = []importer.Item{single}
	}

	result := h.importer.Import(c.Request.Context(), items)
	h.metrics.IncPostOp("import", "ok")
	c.JSON(http.StatusOK, result)
}
