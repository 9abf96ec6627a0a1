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

// GeminiClient generates replies through the Gemini generateContent endpoint.
type GeminiClient struct {
	httpClient   *resty.Client
	apiKey       string
	model        string
	systemPrompt string
	log          zerolog.Logger
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type generateContentRequest struct {
	Contents []geminiContent `json:"contents"`
}

type generateContentResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// NewGeminiClient creates a resty-backed client for the endpoint.
func NewGeminiClient(baseURL, apiKey, model, systemPrompt string, timeout time.Duration, log zerolog.Logger) *GeminiClient {
	return &GeminiClient{
		httpClient: resty.New().
			SetBaseURL(baseURL).
			SetHeader("Content-Type", "application/json").
			SetTimeout(timeout),
		apiKey:       apiKey,
		model:        model,
		systemPrompt: systemPrompt,
		log:          log.With().Str("provider", "gemini").Logger(),
	}
}

// GenerateReply sends a single-shot generation request and reads the text of
// the first candidate.
func (c *GeminiClient) GenerateReply(ctx context.Context, userText string) (string, error) {
	start := time.Now()
	body := generateContentRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: llm.BuildPrompt(c.systemPrompt, userText)}}},
		},
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", c.apiKey).
		SetBody(body).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		metrics.RecordProviderCall("gemini", "error", time.Since(start))
		return "", apperrors.Wrap(err, apperrors.KindUpstream, "request_failed", "call generate content endpoint")
	}

	if resp.IsError() {
		metrics.RecordProviderCall("gemini", "error", time.Since(start))
		c.log.Warn().Int("status", resp.StatusCode()).Msg("generate content returned an error status")
		return "", apperrors.New(apperrors.KindUpstream, fmt.Sprintf("http_%d", resp.StatusCode()), "generate content endpoint returned an error")
	}

	var generated generateContentResponse
	if err := json.Unmarshal(resp.Body(), &generated); err != nil {
		metrics.RecordProviderCall("gemini", "error", time.Since(start))
		return "", apperrors.Wrap(err, apperrors.KindUpstream, "invalid_json", "decode generate content response")
	}

	text := strings.TrimSpace(firstCandidateText(generated))
	if text == "" {
		metrics.RecordProviderCall("gemini", "empty", time.Since(start))
		return "", apperrors.New(apperrors.KindEmptyReply, "empty_model_response", "model returned no usable text")
	}

	metrics.RecordProviderCall("gemini", "ok", time.Since(start))
	return text, nil
}

func firstCandidateText(resp generateContentResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String()
}

var _ llm.Provider = (*GeminiClient)(nil)
