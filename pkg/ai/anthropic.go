package ai

import (
	"context"
	"encoding/json"
	"fmt"
)

const anthropicVersion = "2023-06-01"

// AnthropicProvider talks to the Anthropic Messages API.
type AnthropicProvider struct {
	adapterBase
}

// NewAnthropicProvider builds the adapter without performing I/O.
func NewAnthropicProvider(cfg ProviderConfig, opts Options) *AnthropicProvider {
	cfg.Name = ProviderAnthropic
	return &AnthropicProvider{adapterBase: newAdapterBase(cfg, opts)}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float32            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateText posts a single user message and returns the first content block's text.
func (p *AnthropicProvider) GenerateText(ctx context.Context, req GenerationRequest) (string, error) {
	params := req.Parameters.WithDefaults()
	payload := anthropicRequest{
		Model:       p.cfg.Model,
		MaxTokens:   params.MaxOutputTokens,
		Temperature: *params.Temperature,
		Messages:    []anthropicMessage{{Role: "user", Content: req.Prompt}},
	}
	headers := map[string]string{
		"x-api-key":         p.cfg.APIKey,
		"anthropic-version": anthropicVersion,
	}

	return p.run(ctx, req, func(ctx context.Context) (string, error) {
		body, err := doJSON(ctx, p.opts.HTTPClient, ProviderAnthropic, p.cfg.BaseURL+"/messages", headers, payload)
		if err != nil {
			return "", err
		}

		var parsed anthropicResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return "", &ProviderError{Provider: ProviderAnthropic, StatusCode: 200, Body: string(body), Err: fmt.Errorf("parse response: %w", err)}
		}
		if len(parsed.Content) == 0 {
			return "", &ProviderError{Provider: ProviderAnthropic, StatusCode: 200, Body: string(body), Err: ErrEmptyResponse}
		}
		return parsed.Content[0].Text, nil
	})
}

// GenerateStructured delegates to the shared schema-guided contract.
func (p *AnthropicProvider) GenerateStructured(ctx context.Context, req StructuredRequest) (map[string]interface{}, error) {
	return GenerateStructured(ctx, p, req)
}
