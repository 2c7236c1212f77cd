package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/smart-interviewer-api/internal/middleware"
)

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}

// validationMessage renders the first failing field as "field failed 'tag'".
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return "invalid payload"
	}
	first := validationErrors[0]
	return fmt.Sprintf("%s failed '%s' validation", strings.ToLower(first.Field()), first.Tag())
}

// bindJSON parses the body into payload and validates it. The returned message is safe to
// send to clients.
func bindJSON(c *fiber.Ctx, validate *validator.Validate, payload interface{}) (string, bool) {
	if err := c.BodyParser(payload); err != nil {
		return "invalid payload", false
	}
	if err := validate.Struct(payload); err != nil {
		if isValidationError(err) {
			return validationMessage(err), false
		}
		return "invalid payload", false
	}
	return "", true
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
