package llmprovider

import (
	"strings"

	"github.com/rs/zerolog"

	"chat-gateway/internal/config"
	"chat-gateway/internal/domain/llm"
	"chat-gateway/internal/utils/apperrors"
)

// New selects the configured reply provider. The choice is made once at
// startup; there is no runtime switching.
func New(cfg *config.Config, log zerolog.Logger) (llm.Provider, error) {
	switch strings.ToLower(cfg.LLMProvider) {
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			return nil, apperrors.New(apperrors.KindConfiguration, "llm_provider_not_configured", "GEMINI_API_KEY is not set")
		}
		return NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.SystemPrompt, cfg.ProviderTimeout, log), nil
	case "openrouter":
		if cfg.OpenRouterAPIKey == "" {
			return nil, apperrors.New(apperrors.KindConfiguration, "llm_provider_not_configured", "OPENROUTER_API_KEY is not set")
		}
		return NewOpenRouterClient(cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.SystemPrompt, cfg.ProviderTimeout, log), nil
	default:
		return nil, apperrors.New(apperrors.KindConfiguration, "llm_provider_not_configured", "unsupported LLM_PROVIDER value")
	}
}
