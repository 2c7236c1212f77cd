package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	LogLevel         string
	RedisURL         string
	DefaultProvider  string
	DefaultModel     string
	GeminiAPIKey     string
	OpenAIAPIKey     string
	AnthropicAPIKey  string
	AITimeout        time.Duration
	AIMaxRetries     int
	RateLimitMax     int
	RateLimitWindow  time.Duration
	CORSAllowOrigins string
	ProviderBaseURLs map[string]string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// APIKeyFor returns the server-side key configured for provider, if any.
func (c Config) APIKeyFor(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return c.GeminiAPIKey
	case "openai":
		return c.OpenAIAPIKey
	case "anthropic":
		return c.AnthropicAPIKey
	default:
		return ""
	}
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("INTERVIEWER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// vendor keys are commonly exported without the service prefix
	_ = v.BindEnv("gemini_api_key", "INTERVIEWER_GEMINI_API_KEY", "GEMINI_API_KEY")
	_ = v.BindEnv("openai_api_key", "INTERVIEWER_OPENAI_API_KEY", "OPENAI_API_KEY")
	_ = v.BindEnv("anthropic_api_key", "INTERVIEWER_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY")

	v.SetDefault("app.name", "Smart Interviewer API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "5000")
	v.SetDefault("log.level", "info")
	v.SetDefault("ai.default_provider", "gemini")
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("ai.max_retries", 2)
	v.SetDefault("rate_limit.max", 60)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("cors.allow_origins", "*")

	timeout, err := parseDuration(v.GetString("ai.timeout"), 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid ai timeout: %w", err)
	}

	window, err := parseDuration(v.GetString("rate_limit.window"), time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid rate limit window: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		LogLevel:         strings.ToLower(v.GetString("log.level")),
		RedisURL:         v.GetString("redis.url"),
		DefaultProvider:  strings.ToLower(strings.TrimSpace(v.GetString("ai.default_provider"))),
		DefaultModel:     strings.TrimSpace(v.GetString("ai.default_model")),
		GeminiAPIKey:     strings.TrimSpace(v.GetString("gemini_api_key")),
		OpenAIAPIKey:     strings.TrimSpace(v.GetString("openai_api_key")),
		AnthropicAPIKey:  strings.TrimSpace(v.GetString("anthropic_api_key")),
		AITimeout:        timeout,
		AIMaxRetries:     v.GetInt("ai.max_retries"),
		RateLimitMax:     v.GetInt("rate_limit.max"),
		RateLimitWindow:  window,
		CORSAllowOrigins: v.GetString("cors.allow_origins"),
		ProviderBaseURLs: map[string]string{},
	}

	for _, name := range []string{"gemini", "openai", "anthropic"} {
		if base := strings.TrimSpace(v.GetString("ai." + name + ".base_url")); base != "" {
			cfg.ProviderBaseURLs[name] = base
		}
	}

	if cfg.AIMaxRetries < 0 {
		cfg.AIMaxRetries = 0
	}

	if cfg.RateLimitMax <= 0 {
		cfg.RateLimitMax = 60
	}

	return cfg, nil
}

func parseDuration(raw string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return fallback, nil
	}
	return d, nil
}
