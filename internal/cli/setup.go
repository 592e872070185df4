package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ppiankov/veriwiki/internal/llm"
	"github.com/ppiankov/veriwiki/internal/model"
	"github.com/ppiankov/veriwiki/internal/pipeline"
	"github.com/ppiankov/veriwiki/internal/wiki"
)

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveAPIKey looks up the credential for the configured provider.
// Keys come from the environment only, never from config files.
func resolveAPIKey(provider string) (string, error) {
	var envVar string
	switch strings.ToLower(provider) {
	case "gateway":
		envVar = "AI_GATEWAY_API_KEY"
	case "openai":
		envVar = "OPENAI_API_KEY"
	case "anthropic", "claude":
		envVar = "ANTHROPIC_API_KEY"
	default:
		return "", fmt.Errorf("unknown reasoning provider: %s (supported: gateway, openai, anthropic)", provider)
	}

	key := os.Getenv(envVar)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", envVar)
	}
	return key, nil
}

// applyProviderOverrides applies the provider/model flags on top of defaults.
// Switching away from the gateway clears its base URL so each client falls
// back to the provider's own endpoint.
func applyProviderOverrides(cfg *model.Config, provider, modelName string) {
	if provider != "" && provider != cfg.LLM.Provider {
		cfg.LLM.Provider = provider
		cfg.LLM.BaseURL = ""
	}
	if modelName != "" {
		cfg.LLM.Model = modelName
	}
}

// buildPipeline wires the Wikipedia client and reasoning provider into
// a verification pipeline.
func buildPipeline(cfg *model.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	key, err := resolveAPIKey(cfg.LLM.Provider)
	if err != nil {
		return nil, err
	}
	cfg.LLM.APIKey = key

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		return nil, fmt.Errorf("create reasoning provider: %w", err)
	}

	articles := wiki.NewClient(cfg.Wikipedia, cfg.HTTP)

	return pipeline.New(cfg, articles, provider, logger), nil
}
