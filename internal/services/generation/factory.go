package generation

import (
	"github.com/mohamadjaafar/recipe-management/internal/config"
)

// NewProvider creates a text-generation provider based on the configuration.
// It can optionally wrap the provider in a fallback wrapper if enabled.
// Clients are constructed here once and injected into callers; no
// package-level singletons.
func NewProvider(cfg config.GenerationConfig, anthropicKey, groqKey, geminiKey string) Provider {
	var primary Provider

	switch ProviderType(cfg.Provider) {
	case ProviderGroq:
		primary = NewGroqProvider(groqKey)
	case ProviderGemini:
		primary = NewGeminiProvider(geminiKey)
	default:
		// Default to anthropic
		primary = NewAnthropicProvider(anthropicKey)
	}

	if cfg.FallbackEnabled {
		var secondary Provider

		switch ProviderType(cfg.FallbackProvider) {
		case ProviderGemini:
			secondary = NewGeminiProvider(geminiKey)
		case ProviderAnthropic:
			secondary = NewAnthropicProvider(anthropicKey)
		default:
			// Default to groq
			secondary = NewGroqProvider(groqKey)
		}

		return NewFallbackProvider(primary, secondary)
	}

	return primary
}
