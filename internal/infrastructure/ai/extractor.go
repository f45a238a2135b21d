package ai

import (
	"fmt"

	"github.com/jhoicas/Farmacia-api/internal/application/ports"
	"github.com/jhoicas/Farmacia-api/pkg/config"
)

// NewExtractor elige el adaptador según AI_PROVIDER ("gemini" o "anthropic").
func NewExtractor(cfg config.AIConfig) (ports.PriceListExtractor, error) {
	switch cfg.Provider {
	case "", "gemini":
		return NewGeminiExtractor(cfg.GeminiAPIKey, cfg.GeminiModel), nil
	case "anthropic":
		return NewAnthropicExtractor(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	}
	return nil, fmt.Errorf("AI_PROVIDER desconocido: %q", cfg.Provider)
}
