package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"clubmedia/internal/service"
)

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a simple liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, uploadSvc service.UploadService, highlightSvc service.HighlightService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	// Media upload pipeline
	api.Post("/uploads/presign", PresignUpload(uploadSvc))
	api.Post("/uploads", ProxyUpload(uploadSvc))
	api.Delete("/uploads", DeleteMedia(uploadSvc))

	// Highlight records (persisted media URLs)
	api.Post("/highlights", CreateHighlight(highlightSvc))
	api.Get("/highlights", ListHighlights(highlightSvc))
	api.Get("/highlights/:id", GetHighlight(highlightSvc))
	api.Delete("/highlights/:id", DeleteHighlight(highlightSvc))
}
