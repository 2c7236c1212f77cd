package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce          sync.Once
	apiRequestsTotal      *prometheus.CounterVec
	apiLatencySeconds     *prometheus.HistogramVec
	apiErrorsTotal        *prometheus.CounterVec
	generatorFallbacks    *prometheus.CounterVec
	structuredSchemaDrift *prometheus.CounterVec
	providerConfigureOps  *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the interviewer API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interviewer_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "interviewer_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interviewer_http_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		generatorFallbacks = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interviewer_generator_fallbacks_total",
			Help: "Number of times a generator served its deterministic fallback.",
		}, []string{"operation", "reason"})

		structuredSchemaDrift = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interviewer_structured_schema_mismatch_total",
			Help: "Structured responses that parsed but did not fully match the requested schema.",
		}, []string{"provider"})

		providerConfigureOps = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "interviewer_provider_configure_total",
			Help: "Provider configuration attempts by outcome.",
		}, []string{"provider", "outcome"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			generatorFallbacks,
			structuredSchemaDrift,
			providerConfigureOps,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// GeneratorFallbacks counts fallback results per generator operation.
func GeneratorFallbacks() *prometheus.CounterVec {
	RegisterMetrics()
	return generatorFallbacks
}

// SchemaMismatches counts structured responses failing the soft schema check.
func SchemaMismatches() *prometheus.CounterVec {
	RegisterMetrics()
	return structuredSchemaDrift
}

// ProviderConfigurations counts configure attempts.
func ProviderConfigurations() *prometheus.CounterVec {
	RegisterMetrics()
	return providerConfigureOps
}
