// Package llm provides LLM configuration and the client used for company research.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short, cheap calls
	TierLite ModelTier = "lite"
	// TierStandard is the tier used for company research
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// GenerationOptions are the sampling parameters sent with every request
type GenerationOptions struct {
	Temperature     float32
	TopK            int32
	TopP            float32
	MaxOutputTokens int32
}

// DefaultGenerationOptions returns the fixed sampling used for research
func DefaultGenerationOptions() GenerationOptions {
	return GenerationOptions{
		Temperature:     0.2,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 8192,
	}
}

// Config holds the model configuration for the application
type Config struct {
	Provider   Provider
	Models     map[ModelTier]string
	Generation GenerationOptions
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-1.5-flash",
			TierStandard: "gemini-1.5-pro",
			TierAdvanced: "gemini-1.5-pro",
		},
		Generation: DefaultGenerationOptions(),
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:   c.Provider,
		Models:     make(map[ModelTier]string, len(c.Models)+1),
		Generation: c.Generation,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
