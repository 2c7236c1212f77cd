package ai

import (
	"context"
	"errors"
	"strings"
	"sync"

	"google.golang.org/genai"
)

// GeminiProvider talks to the single-turn Gemini generateContent API.
type GeminiProvider struct {
	adapterBase

	once      sync.Once
	client    *genai.Client
	clientErr error
}

// NewGeminiProvider builds the adapter. The genai client is created on first use.
func NewGeminiProvider(cfg ProviderConfig, opts Options) *GeminiProvider {
	cfg.Name = ProviderGemini
	return &GeminiProvider{adapterBase: newAdapterBase(cfg, opts)}
}

func (p *GeminiProvider) genaiClient(ctx context.Context) (*genai.Client, error) {
	p.once.Do(func() {
		p.client, p.clientErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      p.cfg.APIKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPClient:  p.opts.HTTPClient,
			HTTPOptions: genai.HTTPOptions{BaseURL: p.cfg.BaseURL},
		})
	})
	return p.client, p.clientErr
}

// GenerateText sends one user turn and returns candidates[0].content.parts[0].text.
func (p *GeminiProvider) GenerateText(ctx context.Context, req GenerationRequest) (string, error) {
	params := req.Parameters.WithDefaults()
	return p.run(ctx, req, func(ctx context.Context) (string, error) {
		client, err := p.genaiClient(ctx)
		if err != nil {
			return "", &ProviderError{Provider: ProviderGemini, Err: err}
		}

		resp, err := client.Models.GenerateContent(ctx, p.cfg.Model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
			Temperature:     params.Temperature,
			MaxOutputTokens: int32(params.MaxOutputTokens),
		})
		if err != nil {
			return "", translateGeminiError(err)
		}

		if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
			len(resp.Candidates[0].Content.Parts) == 0 {
			return "", &ProviderError{Provider: ProviderGemini, StatusCode: 200, Err: ErrEmptyResponse}
		}
		return resp.Candidates[0].Content.Parts[0].Text, nil
	})
}

// GenerateStructured delegates to the shared schema-guided contract.
func (p *GeminiProvider) GenerateStructured(ctx context.Context, req StructuredRequest) (map[string]interface{}, error) {
	return GenerateStructured(ctx, p, req)
}

// ValidateConfig rejects keys containing whitespace; they cannot be sent as a header value.
func (p *GeminiProvider) ValidateConfig(cfg ProviderConfig) bool {
	return p.adapterBase.ValidateConfig(cfg) && !strings.ContainsAny(strings.TrimSpace(cfg.APIKey), " \t\r\n")
}

func translateGeminiError(err error) error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch apiErr := any(e).(type) {
		case genai.APIError:
			return &ProviderError{Provider: ProviderGemini, StatusCode: apiErr.Code, Body: apiErr.Message, Err: err}
		case *genai.APIError:
			if apiErr != nil {
				return &ProviderError{Provider: ProviderGemini, StatusCode: apiErr.Code, Body: apiErr.Message, Err: err}
			}
		}
	}
	return &ProviderError{Provider: ProviderGemini, Err: err}
}
