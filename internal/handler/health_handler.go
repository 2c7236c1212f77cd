package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/smart-interviewer-api/internal/config"
	"github.com/noah-isme/smart-interviewer-api/internal/dto"
	"github.com/noah-isme/smart-interviewer-api/internal/utils"
)

// ProviderStatus reports which provider generation calls are routed to.
type ProviderStatus interface {
	CurrentProvider() string
}

// HealthCheck returns a handler that reports application health and the active AI provider.
func HealthCheck(cfg config.Config, providers ProviderStatus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current := "none"
		if providers != nil {
			current = providers.CurrentProvider()
		}

		payload := dto.HealthResponse{
			Status:      "healthy",
			Service:     cfg.AppName,
			Environment: cfg.AppEnv,
			AIProvider:  current,
			Timestamp:   timestamp(),
		}

		return utils.SendSuccess(c, "service healthy", payload)
	}
}
