package ai

import (
	"context"
	"errors"
	"math"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to the OpenAI chat completion API.
type OpenAIProvider struct {
	adapterBase
	client *openai.Client
}

// NewOpenAIProvider builds the adapter. The underlying client is created without network access.
func NewOpenAIProvider(cfg ProviderConfig, opts Options) *OpenAIProvider {
	cfg.Name = ProviderOpenAI
	base := newAdapterBase(cfg, opts)

	config := openai.DefaultConfig(base.cfg.APIKey)
	if base.cfg.BaseURL != "" {
		config.BaseURL = base.cfg.BaseURL
	}
	config.HTTPClient = base.opts.HTTPClient

	return &OpenAIProvider{
		adapterBase: base,
		client:      openai.NewClientWithConfig(config),
	}
}

// GenerateText sends the prompt as a single user message.
func (p *OpenAIProvider) GenerateText(ctx context.Context, req GenerationRequest) (string, error) {
	params := req.Parameters.WithDefaults()
	return p.run(ctx, req, func(ctx context.Context) (string, error) {
		resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       p.cfg.Model,
			MaxTokens:   params.MaxOutputTokens,
			Temperature: openAITemperature(*params.Temperature),
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
			},
		})
		if err != nil {
			return "", p.translateError(err)
		}
		if len(resp.Choices) == 0 {
			return "", &ProviderError{Provider: ProviderOpenAI, StatusCode: 200, Err: ErrEmptyResponse}
		}
		return resp.Choices[0].Message.Content, nil
	})
}

// GenerateStructured delegates to the shared schema-guided contract.
func (p *OpenAIProvider) GenerateStructured(ctx context.Context, req StructuredRequest) (map[string]interface{}, error) {
	return GenerateStructured(ctx, p, req)
}

// ValidateConfig additionally requires a model id.
func (p *OpenAIProvider) ValidateConfig(cfg ProviderConfig) bool {
	return p.adapterBase.ValidateConfig(cfg) && strings.TrimSpace(p.cfg.Model) != ""
}

func (p *OpenAIProvider) translateError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &ProviderError{Provider: ProviderOpenAI, StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		body := ""
		if reqErr.Err != nil {
			body = reqErr.Err.Error()
		}
		return &ProviderError{Provider: ProviderOpenAI, StatusCode: reqErr.HTTPStatusCode, Body: body, Err: err}
	}
	return &ProviderError{Provider: ProviderOpenAI, Err: err}
}

// openAITemperature maps zero to the smallest positive float32; the client omits a zero
// temperature from the request body and the API then applies its own default.
func openAITemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
