package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	return Options{
		Timeout: 5 * time.Second,
		Retry:   RetryPolicy{MaxRetries: 2, InitialInterval: time.Millisecond},
	}
}

func TestNewProviderRejectsUnknownName(t *testing.T) {
	_, err := NewProvider(ProviderConfig{Name: "mistral", APIKey: "k"}, Options{})
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewProviderFillsCatalogDefaults(t *testing.T) {
	for _, entry := range Catalog() {
		provider, err := NewProvider(ProviderConfig{Name: entry.Name, APIKey: "key"}, Options{})
		require.NoError(t, err)
		require.Equal(t, entry.Name, provider.Name())
		require.Equal(t, entry.DefaultModel, provider.Model())
		require.True(t, provider.ValidateConfig(ProviderConfig{Name: entry.Name, APIKey: "key"}))
		require.False(t, provider.ValidateConfig(ProviderConfig{Name: entry.Name, APIKey: "  "}))
	}
}

func TestCatalogListsThreeProviders(t *testing.T) {
	entries := Catalog()
	require.Len(t, entries, 3)
	require.Equal(t, ProviderGemini, entries[0].Name)
	require.Equal(t, "gemini-2.5-flash", entries[0].DefaultModel)

	entry, ok := LookupProvider(ProviderAnthropic)
	require.True(t, ok)
	require.Equal(t, "claude-3-sonnet-20240229", entry.DefaultModel)

	_, ok = LookupProvider("unknown")
	require.False(t, ok)

	entries[0].DefaultModel = "mutated"
	require.Equal(t, "gemini-2.5-flash", Catalog()[0].DefaultModel)
}

func TestParseCatalogRejectsIncompleteEntries(t *testing.T) {
	_, err := parseCatalog([]byte("providers: []"))
	require.Error(t, err)

	_, err = parseCatalog([]byte("providers:\n  - name: gemini\n"))
	require.Error(t, err)
}

func TestAdapterRejectsMissingKeyWithoutNetwork(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer srv.Close()

	provider := NewAnthropicProvider(ProviderConfig{BaseURL: srv.URL}, testOptions())
	_, err := provider.GenerateText(context.Background(), GenerationRequest{Prompt: "hello"})
	require.ErrorIs(t, err, ErrMissingAPIKey)
	require.Zero(t, atomic.LoadInt32(&hits))
}

func TestAdapterRejectsEmptyPrompt(t *testing.T) {
	provider := NewAnthropicProvider(ProviderConfig{APIKey: "key", BaseURL: "http://127.0.0.1:1"}, testOptions())
	_, err := provider.GenerateText(context.Background(), GenerationRequest{Prompt: "   "})
	require.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestAnthropicGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/messages", r.URL.Path)
		require.Equal(t, "secret", r.Header.Get("x-api-key"))
		require.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var payload anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "claude-test", payload.Model)
		require.Equal(t, 512, payload.MaxTokens)
		require.Len(t, payload.Messages, 1)
		require.Equal(t, "user", payload.Messages[0].Role)
		require.Equal(t, "hello", payload.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hi there"}]}`))
	}))
	defer srv.Close()

	provider := NewAnthropicProvider(ProviderConfig{APIKey: "secret", Model: "claude-test", BaseURL: srv.URL + "/v1/"}, testOptions())
	text, err := provider.GenerateText(context.Background(), GenerationRequest{
		Prompt:     "hello",
		Parameters: Parameters{Temperature: Float32(0.2), MaxOutputTokens: 512},
	})
	require.NoError(t, err)
	require.Equal(t, "hi there", text)
}

func TestParametersWithDefaultsKeepsExplicitZeroTemperature(t *testing.T) {
	require.Equal(t, DefaultParameters(), Parameters{}.WithDefaults())
	require.Equal(t, DefaultParameters(), Parameters{Temperature: Float32(-1)}.WithDefaults())

	zero := Parameters{Temperature: Float32(0), MaxOutputTokens: 64}.WithDefaults()
	require.Equal(t, float32(0), *zero.Temperature)
	require.Equal(t, 64, zero.MaxOutputTokens)
}

func TestAnthropicSendsZeroTemperature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Contains(t, payload, "temperature")
		require.Equal(t, float64(0), payload["temperature"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	}))
	defer srv.Close()

	provider := NewAnthropicProvider(ProviderConfig{APIKey: "secret", BaseURL: srv.URL + "/v1/"}, testOptions())
	_, err := provider.GenerateText(context.Background(), GenerationRequest{
		Prompt:     "hello",
		Parameters: Parameters{Temperature: Float32(0)},
	})
	require.NoError(t, err)
}

func TestOpenAITemperatureKeepsZeroOnTheWire(t *testing.T) {
	require.Equal(t, float32(0.4), openAITemperature(0.4))
	require.Greater(t, openAITemperature(0), float32(0))
	require.Less(t, openAITemperature(0), float32(1e-30))
}

func TestAnthropicNonSuccessStatusIsProviderError(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid x-api-key"}`))
	}))
	defer srv.Close()

	provider := NewAnthropicProvider(ProviderConfig{APIKey: "bad", BaseURL: srv.URL}, testOptions())
	_, err := provider.GenerateText(context.Background(), GenerationRequest{Prompt: "hello"})

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr))
	require.Equal(t, http.StatusUnauthorized, providerErr.StatusCode)
	require.Contains(t, providerErr.Body, "invalid x-api-key")
	require.EqualValues(t, 1, atomic.LoadInt32(&hits), "4xx must not be retried")
}

func TestAnthropicRetriesServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"recovered"}]}`))
	}))
	defer srv.Close()

	provider := NewAnthropicProvider(ProviderConfig{APIKey: "key", BaseURL: srv.URL}, testOptions())
	text, err := provider.GenerateText(context.Background(), GenerationRequest{Prompt: "hello"})
	require.NoError(t, err)
	require.Equal(t, "recovered", text)
	require.EqualValues(t, 3, atomic.LoadInt32(&hits))
}

func TestAnthropicEmptyContentIsNotRetried(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	provider := NewAnthropicProvider(ProviderConfig{APIKey: "key", BaseURL: srv.URL}, testOptions())
	_, err := provider.GenerateText(context.Background(), GenerationRequest{Prompt: "hello"})
	require.ErrorIs(t, err, ErrEmptyResponse)
	require.EqualValues(t, 1, atomic.LoadInt32(&hits))
}

func TestAnthropicGenerateStructured(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Contains(t, payload.Messages[0].Content, "Return only the JSON object")

		reply := map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": "Sure! {\"question\":\"Why?\",\"category\":\"General\",\"difficulty\":\"easy\",\"purpose\":\"warmup\"}"}},
		}
		_ = json.NewEncoder(w).Encode(reply)
	}))
	defer srv.Close()

	provider := NewAnthropicProvider(ProviderConfig{APIKey: "key", BaseURL: srv.URL}, testOptions())
	obj, err := provider.GenerateStructured(context.Background(), StructuredRequest{Prompt: "ask", Schema: questionSchema()})
	require.NoError(t, err)
	require.Equal(t, "warmup", obj["purpose"])
}

func TestOpenAIGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var payload struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Equal(t, "gpt-3.5-turbo", payload.Model)
		require.Len(t, payload.Messages, 1)
		require.Equal(t, "user", payload.Messages[0].Role)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"generated"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(ProviderConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"}, testOptions())
	text, err := provider.GenerateText(context.Background(), GenerationRequest{Prompt: "hello"})
	require.NoError(t, err)
	require.Equal(t, "generated", text)
}

func TestOpenAINoChoicesIsEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(ProviderConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"}, testOptions())
	_, err := provider.GenerateText(context.Background(), GenerationRequest{Prompt: "hello"})
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIErrorStatusIsProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"bad model","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(ProviderConfig{APIKey: "sk-test", BaseURL: srv.URL + "/v1"}, testOptions())
	_, err := provider.GenerateText(context.Background(), GenerationRequest{Prompt: "hello"})

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr))
	require.Equal(t, ProviderOpenAI, providerErr.Provider)
	require.Equal(t, http.StatusBadRequest, providerErr.StatusCode)
}

func TestGeminiGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Contains(t, r.URL.Path, "gemini-test:generateContent")

		var payload struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.Len(t, payload.Contents, 1)
		require.Equal(t, "hello", payload.Contents[0].Parts[0].Text)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"from gemini"}]}}]}`))
	}))
	defer srv.Close()

	provider := NewGeminiProvider(ProviderConfig{APIKey: "gm-key", Model: "gemini-test", BaseURL: srv.URL}, testOptions())
	text, err := provider.GenerateText(context.Background(), GenerationRequest{Prompt: "hello"})
	require.NoError(t, err)
	require.Equal(t, "from gemini", text)
}

func TestGeminiEmptyCandidatesIsEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	provider := NewGeminiProvider(ProviderConfig{APIKey: "gm-key", Model: "gemini-test", BaseURL: srv.URL}, testOptions())
	_, err := provider.GenerateText(context.Background(), GenerationRequest{Prompt: "hello"})
	require.ErrorIs(t, err, ErrEmptyResponse)
}

func TestGeminiValidateConfigRejectsWhitespaceKey(t *testing.T) {
	provider := NewGeminiProvider(ProviderConfig{APIKey: "key"}, Options{})
	require.False(t, provider.ValidateConfig(ProviderConfig{APIKey: "bad key"}))
	require.True(t, provider.ValidateConfig(ProviderConfig{APIKey: "good-key"}))
}

func TestProviderErrorTemporary(t *testing.T) {
	cases := []struct {
		err  *ProviderError
		want bool
	}{
		{&ProviderError{StatusCode: 0}, true},
		{&ProviderError{StatusCode: http.StatusTooManyRequests}, true},
		{&ProviderError{StatusCode: http.StatusBadGateway}, true},
		{&ProviderError{StatusCode: http.StatusUnauthorized}, false},
		{&ProviderError{StatusCode: 200, Err: ErrEmptyResponse}, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, tc.err.Temporary(), tc.err.Error())
	}
}

func TestFailureReason(t *testing.T) {
	require.Equal(t, "unparseable", failureReason(ErrStructuredResponse))
	require.Equal(t, "empty", failureReason(&ProviderError{StatusCode: 200, Err: ErrEmptyResponse}))
	require.Equal(t, "http_503", failureReason(&ProviderError{StatusCode: 503}))
	require.Equal(t, "transport", failureReason(&ProviderError{Err: errors.New("dial")}))
	require.Equal(t, "other", failureReason(errors.New("x")))
}

func TestWithRetryStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := withRetry(ctx, RetryPolicy{MaxRetries: 5, InitialInterval: time.Millisecond}, time.Second, func(context.Context) (string, error) {
		calls++
		return "", &ProviderError{Provider: ProviderOpenAI}
	})
	require.Error(t, err)
	require.LessOrEqual(t, calls, 1)
}

func TestProviderErrorMessage(t *testing.T) {
	err := &ProviderError{Provider: ProviderAnthropic, StatusCode: 401, Body: "nope"}
	require.Equal(t, "anthropic api error: 401 - nope", err.Error())
	require.True(t, strings.HasPrefix((&ProviderError{Provider: ProviderGemini, Err: errors.New("dial")}).Error(), "gemini request failed"))
}
