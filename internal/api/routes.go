package api

import (
	"github.com/emlakpress/contentd/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes registers the HTTP surface onto the app.
func SetupRoutes(app *fiber.App, handlers *Handlers, adminKey string) {
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HealthCheck)

	content := api.Group("/content")

	// Reads
	content.Get("/:type/pending", handlers.ListPending)
	content.Get("/:type/:id", handlers.GetContent)

	// Mutations, behind the admin key
	admin := content.Group("", middleware.AdminOnly(adminKey))
	admin.Post("/generate", handlers.GenerateContent)
	admin.Post("/:type/:id/submit", handlers.Submit)
	admin.Post("/:type/:id/approve", handlers.Approve)
	admin.Post("/:type/:id/reject", handlers.Reject)
	admin.Post("/:type/:id/request-changes", handlers.RequestChanges)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"code":    "NOT_FOUND",
			"message": "endpoint not found",
		})
	})
}
