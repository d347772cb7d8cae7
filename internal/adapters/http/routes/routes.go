package routes

import (
	"aquamarket/internal/adapters/http/handlers"
	"aquamarket/internal/adapters/http/middleware"
	"aquamarket/internal/config"
	"aquamarket/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// Services groups the core services the HTTP surface wraps.
type Services struct {
	Identity      *services.IdentityService
	Telemetry     *services.TelemetryService
	Certification *services.CertificationService
	Catalog       *services.CatalogService
	Social        *services.SocialService
	Aggregation   *services.AggregationService
}

// Setup configures all routes for the application
func Setup(app *fiber.App, svc *Services, cfg *config.Config) {
	healthHandler := handlers.NewHealthHandler(cfg)
	authHandler := handlers.NewAuthHandler(svc.Identity, cfg)
	adminHandler := handlers.NewAdminHandler(svc.Identity)
	telemetryHandler := handlers.NewTelemetryHandler(svc.Telemetry, svc.Certification)
	marketHandler := handlers.NewMarketHandler(svc.Catalog, svc.Social, svc.Aggregation, svc.Certification)

	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api/v1")

	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	admin.Get("/pending", adminHandler.Pending)
	admin.Post("/approve", adminHandler.Approve)

	telemetry := api.Group("/telemetry", middleware.AuthMiddleware(cfg), middleware.OperatorOnly())
	telemetry.Post("/", telemetryHandler.Record)
	telemetry.Get("/", telemetryHandler.History)

	authed := api.Group("", middleware.AuthMiddleware(cfg))
	authed.Get("/certification/:email", telemetryHandler.Certification)

	authed.Get("/market", marketHandler.List)
	authed.Post("/market", middleware.OperatorOnly(), marketHandler.Publish)
	authed.Post("/market/:id/review", marketHandler.Review)
	authed.Post("/market/:id/favorite", marketHandler.Favorite)
	authed.Delete("/market/:id/favorite", marketHandler.Unfavorite)
	authed.Get("/favorites", marketHandler.Favorites)
}
