package handlers

import (
	"github.com/gin-gonic/gin"

	"postdeck/pkg/auth"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Posts     *PostsHandler
	Content   *ContentHandler
	AI        *AIHandler
	Media     *MediaHandler
	Analytics *AnalyticsHandler
	Auth      *AuthHandler
}

// RegisterRoutes mounts the API. When authRequired is set, everything
// except login, registration and the inbound webhook sits behind JWT
// auth; the webhook stays open because the automation platform calls
// it with no session.
func RegisterRoutes(app *gin.Engine, h Handlers, authRequired bool, jwtSecret []byte) {
	app.POST("/api/auth/register", h.Auth.Register)
	app.POST("/api/auth/login", h.Auth.Login)
	app.POST("/api/webhook/publish", h.Posts.Webhook)

	api := app.Group("/api")
	if authRequired {
		api.Use(auth.JWTAuthMiddleware(jwtSecret))
	}

	api.GET("/posts", h.Posts.List)
	api.GET("/posts/:id", h.Posts.Get)
	api.POST("/posts", h.Posts.Create)
	api.PATCH("/posts/:id", h.Posts.Update)
	api.PUT("/posts/:id", h.Posts.Update)
	api.DELETE("/posts/:id", h.Posts.Delete)
	api.POST("/posts/:id/send-to-make", h.Posts.SendToMake)
	api.POST("/posts/import", h.Posts.Import)

	api.GET("/platforms", h.Content.Platforms)
	api.POST("/content/adapt", h.Content.Adapt)
	api.POST("/content/quality", h.Content.Quality)
	api.POST("/content/virality", h.Content.Virality)

	api.POST("/ai/generate-caption", h.AI.GenerateCaption)
	api.POST("/ai/improve-text", h.AI.ImproveText)
	api.POST("/ai/suggest-hashtags", h.AI.SuggestHashtags)
	api.POST("/ai/best-time", h.AI.BestTime)
	api.POST("/ai/important-dates", h.AI.ImportantDates)
	api.POST("/ai/generate-post-for-date", h.AI.GeneratePostForDate)
	api.POST("/ai/parse-videos", h.AI.ParseVideos)

	api.POST("/freepik/generate-image", h.Media.GenerateImage)
	api.GET("/freepik/task/:taskId", h.Media.ImageTaskStatus)
	api.POST("/freepik/generate-video", h.Media.GenerateVideo)
	api.GET("/freepik/video-task/:taskId", h.Media.VideoTaskStatus)

	api.GET("/analytics/summary", h.Analytics.Summary)
}
