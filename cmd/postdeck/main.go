package main

import (
	"time"

	"postdeck/internal/assistant"
	"postdeck/internal/freepik"
	"postdeck/internal/handlers"
	"postdeck/internal/importer"
	"postdeck/internal/makecom"
	"postdeck/internal/store"
	"postdeck/internal/tasks"
	"postdeck/pkg/cache"
	"postdeck/pkg/config"
	"postdeck/pkg/database"
	"postdeck/pkg/llm"
	"postdeck/pkg/logging"
	"postdeck/pkg/monitoring"
	"postdeck/pkg/server"
	"postdeck/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("postdeck")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting PostDeck (social posting API)")

	port := config.GetEnv("PORT", "18040")
	jwtSecret := config.GetEnv("JWT_SECRET", "")
	authRequired := config.GetEnvBool("AUTH_REQUIRED", jwtSecret != "")
	makeWebhookURL := config.GetEnv("MAKE_WEBHOOK_URL", "")
	freepikAPIKey := config.GetEnv("FREEPIK_API_KEY", "")

	// Connect to database
	dbConfig := database.DefaultConfig()
	dbConfig.URL = config.RequireEnv("DATABASE_URL")
	db := database.MustConnect(dbConfig, logger)
	defer func() { _ = db.Close() }()

	if err := database.ApplySchema(db, logger); err != nil {
		logger.WithError(err).Fatal("Failed to apply database schema")
	}

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("postdeck", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("postdeck", version.Version, version.GitCommit)

	healthChecker.AddCheck("database", monitoring.DatabaseHealthCheck(db))
	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"DATABASE_URL": dbConfig.URL,
	}))

	metrics := &handlers.PostMetrics{
		PostOperations:    metricsCollector.NewCounter("post_operations_total", "Post CRUD operations", []string{"operation", "status"}),
		WebhookDispatches: metricsCollector.NewCounter("webhook_dispatches_total", "Automation webhook dispatches", []string{"direction", "status"}),
		AIRequests:        metricsCollector.NewCounter("ai_requests_total", "AI assistant requests", []string{"operation", "status"}),
		MediaTasks:        metricsCollector.NewCounter("media_tasks_total", "Media generation tasks", []string{"kind", "status"}),
	}

	// LLM provider for the writing assistant. Requests fail per-call when
	// the key is unset; startup does not depend on it.
	provider, err := llm.NewProvider(llm.LoadConfig())
	if err != nil {
		logger.WithError(err).Fatal("Invalid LLM configuration")
	}

	posts := store.New(db)
	dispatcher := makecom.NewClient(makeWebhookURL, logger)
	if !dispatcher.Enabled() {
		logger.Warn("MAKE_WEBHOOK_URL not set - outbound publishing disabled")
	}
	media := freepik.NewClient(freepikAPIKey, logger)
	if !media.Configured() {
		logger.Warn("FREEPIK_API_KEY not set - media generation disabled")
	}
	copywriter := assistant.New(provider, logger)
	batchImporter := importer.New(posts, logger)
	poller := tasks.NewPoller(logger)

	// Dashboard aggregates are cheap to recompute but hammered by the
	// frontend; a short TTL keeps them fresh enough.
	summaryCache := cache.New(cache.Options{
		TTL:                  30 * time.Second,
		StaleWhileRevalidate: 2 * time.Minute,
		MaxEntries:           64,
	}, cache.MetricsHooks{})

	// Important dates only change with the calendar; cache them hard so
	// repeated month views do not pay for an LLM round trip.
	datesCache := cache.New(cache.Options{
		TTL:         24 * time.Hour,
		NegativeTTL: time.Minute,
		MaxEntries:  32,
	}, cache.MetricsHooks{})

	// Setup router with unified monitoring
	app := server.SetupServiceRouter(logger, "postdeck", healthChecker, metricsCollector)

	handlers.RegisterRoutes(app, handlers.Handlers{
		Posts:     handlers.NewPostsHandler(posts, dispatcher, batchImporter, logger, metrics),
		Content:   handlers.NewContentHandler(),
		AI:        handlers.NewAIHandler(copywriter, datesCache, logger, metrics),
		Media:     handlers.NewMediaHandler(media, poller, logger, metrics),
		Analytics: handlers.NewAnalyticsHandler(posts, summaryCache, logger),
		Auth:      handlers.NewAuthHandler(posts, []byte(jwtSecret), 24*time.Hour, logger),
	}, authRequired, []byte(jwtSecret))

	serverConfig := server.DefaultConfig("postdeck", port)
	if err := server.Start(serverConfig, app, logger); err != nil {
		logger.Fatal(err.Error())
	}
}
