package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/noah-isme/smart-interviewer-api/internal/observability"
	"github.com/noah-isme/smart-interviewer-api/pkg/ai"
)

// ProviderSettings optionally overrides generation parameters for the configured provider.
type ProviderSettings struct {
	Temperature *float32
	MaxTokens   *int
}

// ConfigureProviderInput describes a configure request.
type ConfigureProviderInput struct {
	Provider string
	APIKey   string
	Model    string
	Settings ProviderSettings
}

// ActiveProvider describes the provider that generation calls are currently routed to.
type ActiveProvider struct {
	Name       ai.ProviderName
	Model      string
	Parameters ai.Parameters
}

// ProviderFactory builds an adapter; swapped out in tests.
type ProviderFactory func(cfg ai.ProviderConfig, opts ai.Options) (ai.Provider, error)

// ProviderServiceOptions configures transport and construction of adapters.
type ProviderServiceOptions struct {
	Factory   ProviderFactory
	Transport ai.Options
	BaseURLs  map[string]string
}

// ProviderService holds the single active provider and dispatches generation calls to it.
type ProviderService interface {
	Configure(ctx context.Context, input ConfigureProviderInput) (ActiveProvider, error)
	AutoConfigure(ctx context.Context, provider, apiKey, model string) bool
	Providers() []ai.CatalogEntry
	CurrentProvider() string
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateStructured(ctx context.Context, prompt string, schema ai.Schema) (map[string]interface{}, error)
}

type activeProvider struct {
	provider ai.Provider
	params   ai.Parameters
}

type providerService struct {
	active   atomic.Pointer[activeProvider]
	factory  ProviderFactory
	opts     ai.Options
	baseURLs map[string]string
	logger   zerolog.Logger
}

// NewProviderService constructs an unconfigured provider registry.
func NewProviderService(opts ProviderServiceOptions, logger zerolog.Logger) ProviderService {
	factory := opts.Factory
	if factory == nil {
		factory = ai.NewProvider
	}

	baseURLs := make(map[string]string, len(opts.BaseURLs))
	for name, url := range opts.BaseURLs {
		baseURLs[strings.ToLower(name)] = url
	}

	return &providerService{
		factory:  factory,
		opts:     opts.Transport,
		baseURLs: baseURLs,
		logger:   logger.With().Str("component", "provider_service").Logger(),
	}
}

func (s *providerService) Configure(ctx context.Context, input ConfigureProviderInput) (ActiveProvider, error) {
	name := ai.ProviderName(strings.ToLower(strings.TrimSpace(input.Provider)))
	entry, ok := ai.LookupProvider(name)
	if !ok {
		observability.ProviderConfigurations().WithLabelValues("unknown", "rejected").Inc()
		s.logger.Warn().Str("provider", string(name)).Msg("unknown ai provider requested")
		return ActiveProvider{}, fmt.Errorf("%w: %q", ai.ErrUnknownProvider, name)
	}

	model := strings.TrimSpace(input.Model)
	if model == "" {
		model = entry.DefaultModel
	}

	cfg := ai.ProviderConfig{
		Name:    name,
		APIKey:  strings.TrimSpace(input.APIKey),
		Model:   model,
		BaseURL: s.baseURLs[string(name)],
	}

	provider, err := s.factory(cfg, s.opts)
	if err != nil {
		observability.ProviderConfigurations().WithLabelValues(string(name), "rejected").Inc()
		return ActiveProvider{}, fmt.Errorf("%w: %v", ai.ErrProviderConfigInvalid, err)
	}
	if !provider.ValidateConfig(cfg) {
		observability.ProviderConfigurations().WithLabelValues(string(name), "rejected").Inc()
		s.logger.Warn().Str("provider", string(name)).Msg("ai provider configuration rejected")
		return ActiveProvider{}, fmt.Errorf("%w: %s", ai.ErrProviderConfigInvalid, name)
	}

	params := ai.DefaultParameters()
	if input.Settings.Temperature != nil && *input.Settings.Temperature >= 0 {
		params.Temperature = ai.Float32(*input.Settings.Temperature)
	}
	if input.Settings.MaxTokens != nil && *input.Settings.MaxTokens > 0 {
		params.MaxOutputTokens = *input.Settings.MaxTokens
	}

	s.active.Store(&activeProvider{provider: provider, params: params})
	observability.ProviderConfigurations().WithLabelValues(string(name), "configured").Inc()
	s.logger.Info().Str("provider", string(name)).Str("model", provider.Model()).Msg("ai provider configured")

	return ActiveProvider{Name: name, Model: provider.Model(), Parameters: params}, nil
}

// AutoConfigure is the best-effort startup configuration; failures leave the registry unconfigured.
func (s *providerService) AutoConfigure(ctx context.Context, provider, apiKey, model string) bool {
	if strings.TrimSpace(apiKey) == "" {
		s.logger.Info().Str("provider", provider).Msg("no default api key supplied, starting unconfigured")
		return false
	}

	if _, err := s.Configure(ctx, ConfigureProviderInput{Provider: provider, APIKey: apiKey, Model: model}); err != nil {
		s.logger.Warn().Err(err).Str("provider", provider).Msg("default provider auto-configuration failed")
		return false
	}
	return true
}

func (s *providerService) Providers() []ai.CatalogEntry {
	return ai.Catalog()
}

func (s *providerService) CurrentProvider() string {
	current := s.active.Load()
	if current == nil {
		return "none"
	}
	return string(current.provider.Name())
}

// GenerateText captures the active adapter at call time; a concurrent reconfigure does not affect it.
func (s *providerService) GenerateText(ctx context.Context, prompt string) (string, error) {
	current := s.active.Load()
	if current == nil {
		return "", ai.ErrNoProviderConfigured
	}

	return current.provider.GenerateText(ctx, ai.GenerationRequest{Prompt: prompt, Parameters: current.params})
}

// GenerateStructured returns ai.ErrStructuredResponse when the parsed object lacks a required top-level field.
func (s *providerService) GenerateStructured(ctx context.Context, prompt string, schema ai.Schema) (map[string]interface{}, error) {
	current := s.active.Load()
	if current == nil {
		return nil, ai.ErrNoProviderConfigured
	}

	obj, err := current.provider.GenerateStructured(ctx, ai.StructuredRequest{
		Prompt:     prompt,
		Schema:     schema,
		Parameters: current.params,
	})
	if err != nil {
		return nil, err
	}

	if missing := ai.MissingRequired(schema, obj); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required fields %s", ai.ErrStructuredResponse, strings.Join(missing, ", "))
	}

	if err := ai.CheckSchema(schema, obj); err != nil {
		observability.SchemaMismatches().WithLabelValues(string(current.provider.Name())).Inc()
		s.logger.Debug().Err(err).Str("provider", string(current.provider.Name())).Msg("structured response deviates from schema")
	}

	return obj, nil
}
