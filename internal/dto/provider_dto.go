package dto

// ProviderSettings tunes generation parameters for the configured provider.
type ProviderSettings struct {
	Temperature *float32 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
	MaxTokens   *int     `json:"max_tokens,omitempty" validate:"omitempty,gt=0,lte=32768"`
}

// ConfigureAIRequest represents the payload for switching the active provider.
type ConfigureAIRequest struct {
	Provider string           `json:"provider" validate:"omitempty,max=32"`
	APIKey   string           `json:"api_key" validate:"max=512"`
	Model    string           `json:"model" validate:"max=128"`
	Settings ProviderSettings `json:"settings"`
}

// ConfigureAIResponse echoes the provider that generation calls now use.
type ConfigureAIResponse struct {
	Provider    string  `json:"provider"`
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// ProviderInfo describes a supported provider.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	Description  string `json:"description"`
	DefaultModel string `json:"default_model"`
}

// ProviderListResponse lists supported providers and the active one.
type ProviderListResponse struct {
	Providers []ProviderInfo `json:"providers"`
	Current   string         `json:"current"`
}

// HealthResponse is returned by the liveness probe.
type HealthResponse struct {
	Status      string `json:"status"`
	Service     string `json:"service"`
	Environment string `json:"environment"`
	AIProvider  string `json:"ai_provider"`
	Timestamp   string `json:"timestamp"`
}
