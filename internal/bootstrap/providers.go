package bootstrap

import (
	"fmt"
	"net/http"

	"github.com/aura-blueprint/aura/config"
	"github.com/aura-blueprint/aura/internal/llm"
)

// NewCompleter builds the completion provider selected by AI_PROVIDER.
func NewCompleter(cfg config.AIConfig) (llm.Completer, error) {
	switch cfg.Provider {
	case "", "gateway":
		return llm.NewGatewayClient(llm.GatewayConfig{
			BaseURL:    cfg.GatewayURL,
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			Timeout:    cfg.Timeout,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
		}), nil
	case "gemini":
		return llm.NewGeminiClient(cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.Provider)
	}
}
