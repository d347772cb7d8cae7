package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"aquamarket/internal/adapters/http/middleware"
	"aquamarket/internal/adapters/http/routes"
	"aquamarket/internal/adapters/persistence/repositories"
	"aquamarket/internal/config"
	"aquamarket/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}

	// Repositories over the CSV collections
	userRepo := repositories.NewUserRepository(cfg.Data.Dir)
	measurementRepo := repositories.NewMeasurementRepository(cfg.Data.Dir)
	offerRepo := repositories.NewOfferRepository(cfg.Data.Dir)
	ratingRepo := repositories.NewRatingRepository(cfg.Data.Dir)
	commentRepo := repositories.NewCommentRepository(cfg.Data.Dir)
	favoriteRepo := repositories.NewFavoriteRepository(cfg.Data.Dir)

	// Core services
	identityService := services.NewIdentityService(userRepo)
	telemetryService := services.NewTelemetryService(measurementRepo)
	certificationService := services.NewCertificationService(measurementRepo)
	catalogService := services.NewCatalogService(offerRepo, userRepo)
	socialService := services.NewSocialService(offerRepo, ratingRepo, commentRepo, favoriteRepo)
	aggregationService := services.NewAggregationService(ratingRepo, commentRepo)

	// Seed the bootstrap administrator account
	if err := identityService.SeedAdmin(cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatalf("failed to seed admin account: %v", err)
	}

	// Scheduled snapshot backups of every collection
	if cfg.Backup.Enabled {
		backupService := services.NewBackupService(
			cfg.Backup.Dir, cfg.Backup.Schedule,
			userRepo, measurementRepo, offerRepo, ratingRepo, commentRepo, favoriteRepo,
		)
		if err := backupService.Start(); err != nil {
			log.Fatalf("failed to start backup scheduler: %v", err)
		}
		defer backupService.Stop()
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AquaMarket API",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)

	routes.Setup(app, &routes.Services{
		Identity:      identityService,
		Telemetry:     telemetryService,
		Certification: certificationService,
		Catalog:       catalogService,
		Social:        socialService,
		Aggregation:   aggregationService,
	}, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	log.Printf("server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
	log.Println("server stopped")
}
