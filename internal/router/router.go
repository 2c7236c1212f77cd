package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/smart-interviewer-api/internal/config"
	"github.com/noah-isme/smart-interviewer-api/internal/handler"
	"github.com/noah-isme/smart-interviewer-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ProviderHandler  *handler.ProviderHandler
	InterviewHandler *handler.InterviewHandler
	ProviderStatus   handler.ProviderStatus
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg, deps.ProviderStatus))
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})

	if deps.ProviderHandler != nil {
		deps.ProviderHandler.Register(api)
	}
	if deps.InterviewHandler != nil {
		deps.InterviewHandler.Register(api)
	}
}
