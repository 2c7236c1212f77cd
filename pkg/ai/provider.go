package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Options carries transport settings shared by every adapter.
type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	Retry      RetryPolicy
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.HTTPClient == nil {
		o.HTTPClient = &http.Client{Timeout: o.Timeout}
	}
	return o
}

// NewProvider builds the adapter registered for cfg.Name. It performs no I/O.
func NewProvider(cfg ProviderConfig, opts Options) (Provider, error) {
	switch cfg.Name {
	case ProviderGemini:
		return NewGeminiProvider(cfg, opts), nil
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg, opts), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg, opts), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Name)
	}
}

// adapterBase holds the configuration and call plumbing common to all vendors.
type adapterBase struct {
	cfg  ProviderConfig
	opts Options
}

func newAdapterBase(cfg ProviderConfig, opts Options) adapterBase {
	if entry, ok := LookupProvider(cfg.Name); ok {
		if strings.TrimSpace(cfg.Model) == "" {
			cfg.Model = entry.DefaultModel
		}
		if strings.TrimSpace(cfg.BaseURL) == "" {
			cfg.BaseURL = entry.EndpointBase
		}
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return adapterBase{cfg: cfg, opts: opts.withDefaults()}
}

func (b adapterBase) Name() ProviderName { return b.cfg.Name }

func (b adapterBase) Model() string { return b.cfg.Model }

// ValidateConfig is true iff an api key is present.
func (b adapterBase) ValidateConfig(cfg ProviderConfig) bool {
	return strings.TrimSpace(cfg.APIKey) != ""
}

// run bounds the call by the configured timeout, retries transient failures and records metrics.
func (b adapterBase) run(ctx context.Context, req GenerationRequest, call func(context.Context) (string, error)) (string, error) {
	if strings.TrimSpace(b.cfg.APIKey) == "" {
		return "", &ProviderError{Provider: b.cfg.Name, Err: ErrMissingAPIKey}
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", ErrEmptyPrompt
	}

	ctx, cancel := context.WithTimeout(ctx, b.opts.Timeout)
	defer cancel()

	return instrumented(ctx, b.cfg.Name, b.cfg.Model, func(ctx context.Context) (string, error) {
		return withRetry(ctx, b.opts.Retry, b.opts.Timeout, call)
	})
}
