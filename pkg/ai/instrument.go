package ai

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	aiDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "interviewer",
		Subsystem: "ai",
		Name:      "request_duration_seconds",
		Help:      "Duration of provider generation requests",
	}, []string{"provider", "model"})

	aiFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "interviewer",
		Subsystem: "ai",
		Name:      "request_failures_total",
		Help:      "Number of failed provider generation requests",
	}, []string{"provider", "model", "reason"})

	tracer = otel.Tracer("github.com/noah-isme/smart-interviewer-api/pkg/ai")
)

// instrumented wraps a vendor call with a span, a latency observation and failure accounting.
func instrumented(ctx context.Context, provider ProviderName, model string, call func(context.Context) (string, error)) (string, error) {
	ctx, span := tracer.Start(ctx, string(provider)+".generate_text", trace.WithAttributes(
		attribute.String("ai.provider", string(provider)),
		attribute.String("ai.model", model),
	))
	defer span.End()

	start := time.Now()
	text, err := call(ctx)
	aiDuration.WithLabelValues(string(provider), model).Observe(time.Since(start).Seconds())
	if err != nil {
		aiFailures.WithLabelValues(string(provider), model, failureReason(err)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	span.SetAttributes(attribute.Int("ai.response_chars", len(text)))
	return text, nil
}
