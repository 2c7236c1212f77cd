package service

import (
	"context"
	"strings"
	"sync"

	"github.com/noah-isme/smart-interviewer-api/pkg/ai"
)

// stubAIClient answers structured calls by matching a prompt substring.
type stubAIClient struct {
	mu         sync.Mutex
	structured map[string]map[string]interface{}
	text       string
	err        error
	provider   string
	prompts    []string
}

func newStubAIClient() *stubAIClient {
	return &stubAIClient{structured: map[string]map[string]interface{}{}, provider: "gemini"}
}

func (s *stubAIClient) on(promptFragment string, obj map[string]interface{}) *stubAIClient {
	s.structured[promptFragment] = obj
	return s
}

func (s *stubAIClient) GenerateText(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *stubAIClient) GenerateStructured(_ context.Context, prompt string, schema ai.Schema) (map[string]interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return nil, s.err
	}
	for fragment, obj := range s.structured {
		if strings.Contains(prompt, fragment) {
			if missing := ai.MissingRequired(schema, obj); len(missing) > 0 {
				return nil, ai.ErrStructuredResponse
			}
			return obj, nil
		}
	}
	return nil, ai.ErrStructuredResponse
}

func (s *stubAIClient) CurrentProvider() string {
	return s.provider
}

func (s *stubAIClient) recordedPrompts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.prompts...)
}
