package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("INTERVIEWER_APP_PORT", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("INTERVIEWER_GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gemini", cfg.DefaultProvider)
	require.Equal(t, 30*time.Second, cfg.AITimeout)
	require.Equal(t, 2, cfg.AIMaxRetries)
	require.Equal(t, 60, cfg.RateLimitMax)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
	require.Equal(t, "*", cfg.CORSAllowOrigins)
}

func TestLoadReadsPrefixedAndBareKeys(t *testing.T) {
	t.Setenv("INTERVIEWER_APP_PORT", "7070")
	t.Setenv("INTERVIEWER_AI_DEFAULT_PROVIDER", "OpenAI")
	t.Setenv("INTERVIEWER_AI_TIMEOUT", "5s")
	t.Setenv("GEMINI_API_KEY", " gm-key ")
	t.Setenv("INTERVIEWER_OPENAI_API_KEY", "sk-key")
	t.Setenv("INTERVIEWER_AI_ANTHROPIC_BASE_URL", "http://localhost:9999/v1")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.HTTPAddress())
	require.Equal(t, "openai", cfg.DefaultProvider)
	require.Equal(t, 5*time.Second, cfg.AITimeout)
	require.Equal(t, "gm-key", cfg.APIKeyFor("gemini"))
	require.Equal(t, "sk-key", cfg.APIKeyFor("OPENAI"))
	require.Empty(t, cfg.APIKeyFor("unknown"))
	require.Equal(t, "http://localhost:9999/v1", cfg.ProviderBaseURLs["anthropic"])
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("INTERVIEWER_AI_TIMEOUT", "soon")

	_, err := Load()
	require.Error(t, err)
}
