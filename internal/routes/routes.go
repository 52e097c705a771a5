// Package routes defines the API routing configuration: every HTTP
// route, its handler, and its authentication requirements.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sentra/internal/config"
	"sentra/internal/handlers"
	"sentra/internal/middleware"
	"sentra/internal/repositories"
	"sentra/internal/services/analysis"
	"sentra/internal/services/auth"
	"sentra/internal/services/evidence"
	"sentra/internal/services/ingest"
	"sentra/internal/services/network"
	"sentra/internal/services/report"
	"sentra/internal/services/risk"
)

// Services bundles the long-lived services the router wires up, so the
// entrypoint can reach the ones it also needs (the Kafka consumer).
type Services struct {
	Ingest   *ingest.Service
	Pipeline *analysis.Pipeline
}

// SetupRoutes wires repositories, services, and handlers onto the app.
func SetupRoutes(app *fiber.App, db *gorm.DB, logger *zap.Logger) Services {
	// Repositories
	entityRepo := repositories.NewEntityRepository(db)
	txRepo := repositories.NewTransactionRepository(db)
	evidenceRepo := repositories.NewEvidenceRepository(db)
	scoreRepo := repositories.NewRiskScoreRepository(db)
	reportRepo := repositories.NewReportRepository(db)
	userRepo := repositories.NewUserRepository(db)

	// Services
	authService := auth.NewService(userRepo)
	ingestService := ingest.NewService(entityRepo, txRepo, logger.Named("ingest"))
	aggregator := evidence.NewAggregator(config.LoadEvidenceConfig(), logger.Named("evidence"))
	analyzer := network.NewAnalyzer(config.GetDurationEnv("VELOCITY_WINDOW", 0))
	engine := risk.NewEngine(config.LoadRiskConfig())
	pipeline := analysis.NewPipeline(
		entityRepo, txRepo, evidenceRepo, scoreRepo,
		repositories.CacheService,
		aggregator, analyzer, engine,
		logger.Named("analysis"),
	)
	generator := report.NewGenerator(
		entityRepo, txRepo, evidenceRepo, scoreRepo, reportRepo,
		analyzer, logger.Named("report"),
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	entityHandler := handlers.NewEntityHandler(entityRepo, evidenceRepo, scoreRepo)
	txHandler := handlers.NewTransactionHandler(txRepo)
	uploadHandler := handlers.NewUploadHandler(ingestService)
	analysisHandler := handlers.NewAnalysisHandler(pipeline)
	reportHandler := handlers.NewReportHandler(generator, reportRepo)
	networkHandler := handlers.NewNetworkHandler(entityRepo, txRepo, scoreRepo)
	adminHandler := handlers.NewAdminHandler()

	authMiddleware := middleware.NewAuthMiddleware(userRepo, logger.Named("auth"))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Sentra entity risk API",
			"docs":    "/api",
		})
	})

	api := app.Group("/api")

	// Public endpoints
	api.Get("/health", handlers.HealthCheck)
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	// Authenticated endpoints
	authed := api.Group("", authMiddleware.Handler)
	authed.Post("/logout", authHandler.Logout)

	authed.Post("/upload", uploadHandler.Upload)

	authed.Get("/entities", entityHandler.List)
	authed.Get("/entities/:id", entityHandler.Get)
	authed.Post("/entities/:id/evidence", entityHandler.AddEvidence)
	authed.Get("/entities/:id/transactions", txHandler.ListByEntity)
	authed.Get("/entities/:id/score", analysisHandler.GetScore)
	authed.Post("/entities/:id/analyze", analysisHandler.Analyze)
	authed.Post("/analyze/batch", analysisHandler.AnalyzeBatch)

	authed.Post("/entities/:id/report", reportHandler.Generate)
	authed.Get("/entities/:id/report", reportHandler.Latest)

	authed.Get("/network", networkHandler.Graph)

	// Admin endpoints
	admin := authed.Group("/admin", middleware.AdminOnly)
	admin.Post("/reset", adminHandler.Reset)

	return Services{Ingest: ingestService, Pipeline: pipeline}
}
