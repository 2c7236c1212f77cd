package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/noah-isme/smart-interviewer-api/internal/middleware"
	"github.com/noah-isme/smart-interviewer-api/internal/observability"
	"github.com/noah-isme/smart-interviewer-api/pkg/ai"
)

// AIClient is the slice of ProviderService the domain generators depend on.
type AIClient interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateStructured(ctx context.Context, prompt string, schema ai.Schema) (map[string]interface{}, error)
	CurrentProvider() string
}

var generatorTracer = otel.Tracer("github.com/noah-isme/smart-interviewer-api/internal/service")

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return generatorTracer.Start(ctx, name)
}

// recordFallback logs and counts a degraded result. The error never leaves the generator.
func recordFallback(ctx context.Context, logger zerolog.Logger, operation string, err error) {
	reason := fallbackReason(err)
	observability.GeneratorFallbacks().WithLabelValues(operation, reason).Inc()
	trace.SpanFromContext(ctx).AddEvent("fallback")

	event := logger.Warn().Str("fallback", operation).Str("reason", reason)
	if correlationID := middleware.CorrelationIDFromContext(ctx); correlationID != "" {
		event = event.Str("correlation_id", correlationID)
	}
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("serving fallback result")
}

func fallbackReason(err error) string {
	var providerErr *ai.ProviderError
	switch {
	case err == nil:
		return "empty_result"
	case errors.Is(err, ai.ErrNoProviderConfigured):
		return "no_provider"
	case errors.Is(err, ai.ErrStructuredResponse):
		return "unparseable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &providerErr):
		return "provider_error"
	default:
		return "internal"
	}
}
