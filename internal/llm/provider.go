package llm

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Config selects and credentials one model provider.
type Config struct {
	// Type is "openai-compatible" (default; covers Mistral's hosted API)
	// or "anthropic".
	Type     string
	APIKey   string
	Endpoint string
	Model    string
}

const (
	defaultOpenAIModel    = "mistral-large-latest"
	defaultAnthropicModel = "claude-3-5-haiku-latest"
)

// NewClient builds a Client for the configured provider.
func NewClient(cfg Config, logger *zap.Logger) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("llm: api key is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var b backend
	switch t := normalizeProviderType(cfg.Type); t {
	case "", "openai-compatible", "openaicompatible", "openai", "mistral":
		b = newOpenAIBackend(cfg)
	case "anthropic":
		b = newAnthropicBackend(cfg)
	default:
		return nil, fmt.Errorf("llm: unknown provider type %q", cfg.Type)
	}

	return &client{backend: b, logger: logger.Named("LLMClient")}, nil
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}
