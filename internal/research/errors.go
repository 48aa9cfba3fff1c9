package research

import "fmt"

// ConfigurationError reports a missing or invalid provider setting
type ConfigurationError struct {
	Setting string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s %s", e.Setting, e.Message)
}

// ErrMissingAPIKey is returned before any network call when no Gemini key is configured.
// Callers recover from it by substituting the placeholder record.
var ErrMissingAPIKey = &ConfigurationError{
	Setting: "GEMINI_API_KEY",
	Message: "is not set in environment variables",
}

// ProviderError wraps an upstream failure from the generative AI service.
// Message carries the raw upstream text for diagnostics.
type ProviderError struct {
	Company string
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("Gemini API error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}
