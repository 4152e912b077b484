package generation

import "context"

// ProviderType identifies a text-generation provider integration.
type ProviderType string

const (
	ProviderAnthropic ProviderType = "anthropic"
	ProviderGroq      ProviderType = "groq"
	ProviderGemini    ProviderType = "gemini"
)

// Provider is the text-generation collaborator contract: one prompt in, one
// text blob out. All provider integrations are treated identically; the
// caller never sees provider-specific response structure.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
