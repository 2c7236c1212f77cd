package ai

import (
	"context"
	"time"
)

// Defaults applied by the provider service when a caller supplies no parameters.
const (
	DefaultTemperature     float32 = 0.7
	DefaultMaxOutputTokens         = 2048
	DefaultTimeout                 = 30 * time.Second
)

// ProviderName identifies one of the supported vendors.
type ProviderName string

const (
	ProviderGemini    ProviderName = "gemini"
	ProviderOpenAI    ProviderName = "openai"
	ProviderAnthropic ProviderName = "anthropic"
)

// Parameters tune a single generation call. A nil Temperature means unset; an explicit
// zero is sent to the vendor as zero.
type Parameters struct {
	Temperature     *float32
	MaxOutputTokens int
}

// Float32 returns a pointer to v.
func Float32(v float32) *float32 {
	return &v
}

// DefaultParameters returns the parameters used when nothing else is configured.
func DefaultParameters() Parameters {
	return Parameters{Temperature: Float32(DefaultTemperature), MaxOutputTokens: DefaultMaxOutputTokens}
}

// WithDefaults fills unset values with the package defaults.
func (p Parameters) WithDefaults() Parameters {
	if p.Temperature == nil || *p.Temperature < 0 {
		p.Temperature = Float32(DefaultTemperature)
	}
	if p.MaxOutputTokens <= 0 {
		p.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return p
}

// GenerationRequest is a provider-agnostic text generation request.
type GenerationRequest struct {
	Prompt     string
	Parameters Parameters
}

// Schema is a JSON-schema shaped description of the object a structured call should return.
// It guides the prompt and a loose post-hoc check; it is not enforced as a grammar.
type Schema map[string]interface{}

// StructuredRequest asks a provider for a JSON object shaped like Schema.
type StructuredRequest struct {
	Prompt     string
	Schema     Schema
	Parameters Parameters
}

// ProviderConfig is immutable once an adapter has been built from it.
type ProviderConfig struct {
	Name    ProviderName
	APIKey  string
	Model   string
	BaseURL string
}

// TextGenerator is the single capability the structured-response contract needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, req GenerationRequest) (string, error)
}

// Provider is implemented by every vendor adapter.
type Provider interface {
	TextGenerator
	Name() ProviderName
	Model() string
	GenerateStructured(ctx context.Context, req StructuredRequest) (map[string]interface{}, error)
	ValidateConfig(cfg ProviderConfig) bool
}
