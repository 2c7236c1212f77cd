package ai

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrMissingAPIKey         = errors.New("missing api key")
	ErrEmptyPrompt           = errors.New("prompt is empty")
	ErrEmptyResponse         = errors.New("provider returned no content")
	ErrUnknownProvider       = errors.New("unknown provider")
	ErrProviderConfigInvalid = errors.New("invalid provider configuration")
	ErrNoProviderConfigured  = errors.New("no ai provider configured")
	ErrStructuredResponse    = errors.New("could not parse structured response as json")
)

// ProviderError reports a failed vendor call. StatusCode is zero for transport failures.
type ProviderError struct {
	Provider   ProviderName
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Body != "":
		return fmt.Sprintf("%s api error: %d - %s", e.Provider, e.StatusCode, e.Body)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s api error: %d", e.Provider, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s request failed", e.Provider)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Temporary reports whether retrying the call could succeed.
func (e *ProviderError) Temporary() bool {
	if errors.Is(e.Err, ErrEmptyResponse) {
		return false
	}
	return e.StatusCode == 0 ||
		e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode >= http.StatusInternalServerError
}

// failureReason maps an error to a low-cardinality metrics label.
func failureReason(err error) string {
	var providerErr *ProviderError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrStructuredResponse):
		return "unparseable"
	case errors.Is(err, ErrEmptyResponse):
		return "empty"
	case errors.As(err, &providerErr) && providerErr.StatusCode != 0:
		return fmt.Sprintf("http_%d", providerErr.StatusCode)
	case errors.As(err, &providerErr):
		return "transport"
	default:
		return "other"
	}
}
