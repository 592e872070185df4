// Package llm provides clients for the external reasoning services that
// score and rewrite article content.
package llm

import (
	"context"
	"errors"
)

// Externally distinguishable reasoning-service failures. Any other
// provider error is an unclassified upstream failure.
var (
	// ErrRateLimited maps an upstream 429
	ErrRateLimited = errors.New("reasoning service rate limit exceeded")

	// ErrQuotaExhausted maps an upstream 402
	ErrQuotaExhausted = errors.New("reasoning service credits exhausted")
)

// Provider defines the completion capability used by the pipeline
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a single-turn prompt and returns the raw response text
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds reasoning provider configuration
type Config struct {
	// Provider name: "gateway", "openai", "anthropic"
	Provider string

	// Model is the fixed model identifier used for every request
	Model string

	// APIKey authenticates against the provider
	APIKey string

	// BaseURL for OpenAI-compatible endpoints (the gateway)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens limits response length for rewrites
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}
