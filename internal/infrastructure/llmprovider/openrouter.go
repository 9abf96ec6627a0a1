package llmprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"chat-gateway/internal/domain/llm"
	"chat-gateway/internal/infrastructure/metrics"
	"chat-gateway/internal/utils/apperrors"
)

// OpenRouterClient generates replies through an OpenAI-compatible
// chat-completions endpoint.
type OpenRouterClient struct {
	httpClient   *resty.Client
	apiKey       string
	model        string
	systemPrompt string
	log          zerolog.Logger
}

// NewOpenRouterClient creates a resty-backed client for the endpoint.
func NewOpenRouterClient(baseURL, apiKey, model, systemPrompt string, timeout time.Duration, log zerolog.Logger) *OpenRouterClient {
	return &OpenRouterClient{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
		apiKey:       apiKey,
		model:        model,
		systemPrompt: systemPrompt,
		log:          log.With().Str("provider", "openrouter").Logger(),
	}
}

// GenerateReply posts a single-message chat completion and normalizes the
// response to plain text. The status code is checked before the body is
// parsed, and a body that is not JSON is a distinct failure from a JSON body
// that simply carries no content.
func (c *OpenRouterClient) GenerateReply(ctx context.Context, userText string) (string, error) {
	start := time.Now()
	body := llm.ChatCompletionRequest{
		Model: c.model,
		Messages: []llm.ChatMessage{
			{Role: "user", Content: llm.BuildPrompt(c.systemPrompt, userText)},
		},
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(body).
		Post("/v1/chat/completions")
	if err != nil {
		metrics.RecordProviderCall("openrouter", "error", time.Since(start))
		return "", apperrors.Wrap(err, apperrors.KindUpstream, "request_failed", "call chat completions endpoint")
	}

	if resp.IsError() {
		metrics.RecordProviderCall("openrouter", "error", time.Since(start))
		c.log.Warn().Int("status", resp.StatusCode()).Msg("chat completions returned an error status")
		return "", apperrors.New(apperrors.KindUpstream, fmt.Sprintf("http_%d", resp.StatusCode()), "chat completions endpoint returned an error")
	}

	var completion llm.ChatCompletionResponse
	if err := json.Unmarshal(resp.Body(), &completion); err != nil {
		metrics.RecordProviderCall("openrouter", "error", time.Since(start))
		return "", apperrors.Wrap(err, apperrors.KindUpstream, "invalid_json", "decode chat completions response")
	}

	text := strings.TrimSpace(completion.FirstContent())
	if text == "" {
		metrics.RecordProviderCall("openrouter", "empty", time.Since(start))
		return "", apperrors.New(apperrors.KindEmptyReply, "empty_model_response", "model returned no usable text")
	}

	metrics.RecordProviderCall("openrouter", "ok", time.Since(start))
	return text, nil
}

var _ llm.Provider = (*OpenRouterClient)(nil)
