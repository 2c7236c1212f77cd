package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/smart-interviewer-api/internal/dto"
	"github.com/noah-isme/smart-interviewer-api/internal/service"
	"github.com/noah-isme/smart-interviewer-api/internal/utils"
	"github.com/noah-isme/smart-interviewer-api/pkg/ai"
)

const defaultProvider = "gemini"

// ProviderHandler lists and switches AI providers.
type ProviderHandler struct {
	service   service.ProviderService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProviderHandler constructs a provider handler.
func NewProviderHandler(service service.ProviderService, validator *validator.Validate, logger zerolog.Logger) *ProviderHandler {
	return &ProviderHandler{
		service:   service,
		validator: validator,
		logger:    logger.With().Str("component", "provider_handler").Logger(),
	}
}

// Register wires provider routes below /api.
func (h *ProviderHandler) Register(router fiber.Router) {
	router.Get("/providers", h.list)
	router.Post("/configure-ai", h.configure)
}

func (h *ProviderHandler) list(c *fiber.Ctx) error {
	entries := h.service.Providers()
	providers := make([]dto.ProviderInfo, 0, len(entries))
	for _, entry := range entries {
		providers = append(providers, dto.ProviderInfo{
			Name:         string(entry.Name),
			DisplayName:  entry.DisplayName,
			Description:  entry.Description,
			DefaultModel: entry.DefaultModel,
		})
	}

	return utils.SendSuccess(c, "providers retrieved", dto.ProviderListResponse{
		Providers: providers,
		Current:   h.service.CurrentProvider(),
	})
}

func (h *ProviderHandler) configure(c *fiber.Ctx) error {
	var payload dto.ConfigureAIRequest
	if message, ok := bindJSON(c, h.validator, &payload); !ok {
		return utils.SendError(c, fiber.StatusBadRequest, message)
	}
	if payload.Provider == "" {
		payload.Provider = defaultProvider
	}

	active, err := h.service.Configure(c.UserContext(), service.ConfigureProviderInput{
		Provider: payload.Provider,
		APIKey:   payload.APIKey,
		Model:    payload.Model,
		Settings: service.ProviderSettings{
			Temperature: payload.Settings.Temperature,
			MaxTokens:   payload.Settings.MaxTokens,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrUnknownProvider):
			return utils.SendError(c, fiber.StatusBadRequest, "unsupported provider: "+payload.Provider)
		case errors.Is(err, ai.ErrProviderConfigInvalid):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid provider configuration")
		default:
			requestLogger(h.logger, c).Error().Err(err).Str("provider", payload.Provider).Msg("failed to configure provider")
			return utils.SendError(c, fiber.StatusBadRequest, "failed to configure AI provider")
		}
	}

	return utils.SendSuccess(c, "AI provider configured", dto.ConfigureAIResponse{
		Provider:    string(active.Name),
		Model:       active.Model,
		Temperature: *active.Parameters.WithDefaults().Temperature,
		MaxTokens:   active.Parameters.MaxOutputTokens,
	})
}
