package providers

import (
	"context"
	"os"
)

// Image is one inline image part of a multimodal prompt.
type Image struct {
	MIMEType string
	Data     []byte
}

// Config represents the configuration for an LLM call
type Config struct {
	Model       string
	Temperature float64
	Prompt      string
	Images      []Image
}

// Provider defines the interface for an LLM provider
type Provider interface {
	Generate(ctx context.Context, config Config) (string, error)
}

// DefaultModel returns the default model for a provider, honoring the
// provider-specific environment override.
func DefaultModel(provider string) string {
	switch provider {
	case "gemini":
		model := os.Getenv("GEMINI_MODEL")
		if model == "" {
			return "gemini-2.5-flash"
		}
		return model
	case "openai":
		model := os.Getenv("OPENAI_MODEL")
		if model == "" {
			return "gpt-4o"
		}
		return model
	case "ollama":
		model := os.Getenv("OLLAMA_MODEL")
		if model == "" {
			return "mistral-small3.2:24b"
		}
		return model
	default:
		return ""
	}
}

// DefaultProvider returns the provider name to use when none is specified.
func DefaultProvider() string {
	provider := os.Getenv("GHOSTWRITER_PROVIDER")
	if provider == "" {
		return "gemini"
	}
	return provider
}
