package llmprovider

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-gateway/internal/config"
	"chat-gateway/internal/utils/apperrors"
)

func TestNew_Gemini(t *testing.T) {
	cfg := &config.Config{
		LLMProvider:  "gemini",
		GeminiAPIKey: "key",
	}

	provider, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &GeminiClient{}, provider)
}

func TestNew_OpenRouter(t *testing.T) {
	cfg := &config.Config{
		LLMProvider:      "OpenRouter", // the selector is case-insensitive
		OpenRouterAPIKey: "key",
	}

	provider, err := New(cfg, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &OpenRouterClient{}, provider)
}

func TestNew_MissingKey(t *testing.T) {
	for _, name := range []string{"gemini", "openrouter"} {
		cfg := &config.Config{LLMProvider: name}

		provider, err := New(cfg, zerolog.Nop())
		require.Error(t, err, "provider %s", name)
		assert.Nil(t, provider)
		assert.Equal(t, "llm_provider_not_configured", apperrors.CodeOf(err))
		assert.Equal(t, apperrors.KindConfiguration, apperrors.KindOf(err))
	}
}

func TestNew_UnsupportedProvider(t *testing.T) {
	cfg := &config.Config{LLMProvider: "anthropic"}

	provider, err := New(cfg, zerolog.Nop())
	require.Error(t, err)
	assert.Nil(t, provider)
	assert.Equal(t, "llm_provider_not_configured", apperrors.CodeOf(err))
}
