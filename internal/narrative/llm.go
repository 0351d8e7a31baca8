// Package narrative turns a retrieved historical record and a user question
// into a prompt and asks a language model to answer it. It defines a
// provider-agnostic LLM interface with an OpenAI-compatible implementation
// and a deterministic mock for testing.
package narrative

import (
	"context"

	"github.com/cockroachdb/errors"
)

var (
	ErrLLMFailed     = errors.New("LLM request failed")
	ErrInvalidConfig = errors.New("invalid LLM configuration")
)

// LLM defines the interface for interacting with language models.
type LLM interface {
	// Generate produces text from a prompt using the configured model.
	// Returns the generated text or an error if generation fails.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Providers with a built-in endpoint and default model.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// GeminiBaseURL is Google's OpenAI-compatible endpoint for Gemini models.
const GeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"

// LLMConfig holds configuration options for LLM providers.
type LLMConfig struct {
	// Provider selects defaults for BaseURL and Model ("gemini" or "openai")
	Provider string

	// Model specifies the model identifier (e.g., "gemini-2.0-flash", "gpt-4o")
	Model string

	// BaseURL overrides the provider endpoint (empty = provider default)
	BaseURL string

	// Temperature controls randomness (0 = model default)
	Temperature float32

	// MaxTokens limits the response length (0 = use provider default)
	MaxTokens int

	// APIKey is the authentication key for the provider
	APIKey string
}

// DefaultLLMConfig returns sensible defaults for answering history questions.
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Provider:  ProviderGemini,
		Model:     DefaultModel(ProviderGemini),
		MaxTokens: 1024,
	}
}

// DefaultModel returns the model used when none is configured for provider.
func DefaultModel(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o"
	default:
		return "gemini-2.0-flash"
	}
}

// endpoint returns the base URL to use, or "" for the SDK default.
func (c LLMConfig) endpoint() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	if c.Provider == ProviderGemini {
		return GeminiBaseURL
	}
	return ""
}

// Validate reports configuration problems before any request is made.
func (c LLMConfig) Validate() error {
	switch c.Provider {
	case ProviderGemini, ProviderOpenAI:
	case "":
		if c.BaseURL == "" {
			return errors.Wrap(ErrInvalidConfig, "provider or base URL is required")
		}
	default:
		if c.BaseURL == "" {
			return errors.WithHint(
				errors.Wrapf(ErrInvalidConfig, "unknown provider %q", c.Provider),
				"use \"gemini\" or \"openai\", or set a base URL")
		}
	}
	if c.APIKey == "" {
		return errors.Wrap(ErrInvalidConfig, "missing API key")
	}
	if c.Model == "" {
		return errors.Wrap(ErrInvalidConfig, "missing model name")
	}
	return nil
}
