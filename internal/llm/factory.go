package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/veriwiki/internal/model"
)

// NewProvider creates a reasoning provider based on configuration.
// The credential must be present; its absence is a construction error.
func NewProvider(config Config) (Provider, error) {
	provider := strings.ToLower(config.Provider)

	switch provider {
	case "gateway", "openai":
		return NewOpenAIProvider(provider, config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	default:
		return nil, fmt.Errorf("unknown reasoning provider: %s (supported: gateway, openai, anthropic)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig plus proxy settings to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig, httpConfig model.HTTPConfig) Config {
	return Config{
		Provider:   modelConfig.Provider,
		Model:      modelConfig.Model,
		APIKey:     modelConfig.APIKey,
		BaseURL:    modelConfig.BaseURL,
		Timeout:    modelConfig.Timeout,
		MaxTokens:  modelConfig.MaxTokens,
		HTTPProxy:  httpConfig.HTTPProxy,
		HTTPSProxy: httpConfig.HTTPSProxy,
	}
}
