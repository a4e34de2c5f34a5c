package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"postdeck/internal/store"
	"postdeck/pkg/auth"
	"postdeck/pkg/logging"
)

type AuthHandler struct {
	users     UserStore
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    logging.Logger
}

func NewAuthHandler(users UserStore, jwtSecret []byte, tokenTTL time.Duration, logger logging.Logger) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required,min=3"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom d'utilisateur (min. 3) et mot de passe (min. 8) requis"})
		return
	}

	if _, err := h.users.GetUserByUsername(c.Request.Context(), req.Username); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Nom d'utilisateur déjà utilisé"})
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		h.logger.WithError(err).Error("User lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.WithError(err).Error("Password hashing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), req.Username, hashed)
	if err != nil {
		h.logger.WithError(err).Error("User creation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Username, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.logger.WithError(err).Error("Token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom d'utilisateur et mot de passe requis"})
		return
	}

	user, err := h.users.GetUserByUsername(c.Request.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("User lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
		return
	}

	if !auth.CheckPassword(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	token, err := auth.GenerateJWT(user.ID, user.Username, h.jwtSecret, h.tokenTTL)
	if err != nil {
		h.logger.WithError(err).Error("Token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
