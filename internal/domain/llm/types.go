package llm

import (
	"encoding/json"
	"strings"
)

// ChatCompletionRequest mirrors the OpenAI-compatible request shape.
type ChatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []ChatMessage `json:"messages"`
}

// ChatMessage is a single outbound message in the request body.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatCompletionResponse captures the non-streaming completion payload.
type ChatCompletionResponse struct {
	ID      string                 `json:"id"`
	Object  string                 `json:"object"`
	Created int64                  `json:"created"`
	Model   string                 `json:"model"`
	Choices []ChatCompletionChoice `json:"choices"`
	Usage   *Usage                 `json:"usage,omitempty"`
}

// ChatCompletionChoice represents one completion choice.
type ChatCompletionChoice struct {
	Index        int             `json:"index"`
	Message      ResponseMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

// ResponseMessage is the assistant message returned by the provider.
type ResponseMessage struct {
	Role    string         `json:"role"`
	Content MessageContent `json:"content"`
}

// Usage contains token accounting metadata.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ContentPart is a fragment of a structured reply. The text field is optional;
// parts without one are skipped during normalization.
type ContentPart struct {
	Type string  `json:"type,omitempty"`
	Text *string `json:"text,omitempty"`
}

// MessageContent is a tagged union over the two content shapes providers in
// this family return: a plain string, or a sequence of content parts. Any
// other shape decodes to empty content rather than a parse error.
type MessageContent struct {
	text    string
	parts   []ContentPart
	isParts bool
}

// UnmarshalJSON decodes either content shape.
func (c *MessageContent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.text = s
		c.parts = nil
		c.isParts = false
		return nil
	}

	var parts []ContentPart
	if err := json.Unmarshal(data, &parts); err == nil {
		c.parts = parts
		c.isParts = true
		return nil
	}

	// Unknown shape: no content, not an error.
	*c = MessageContent{}
	return nil
}

// MarshalJSON re-emits the decoded shape.
func (c MessageContent) MarshalJSON() ([]byte, error) {
	if c.isParts {
		return json.Marshal(c.parts)
	}
	return json.Marshal(c.text)
}

// Text normalizes the content to a single string. For the parts shape, the
// text of every part that has one is concatenated in order.
func (c MessageContent) Text() string {
	if !c.isParts {
		return c.text
	}
	var b strings.Builder
	for _, part := range c.parts {
		if part.Text != nil {
			b.WriteString(*part.Text)
		}
	}
	return b.String()
}

// FirstContent returns the normalized text of choices[0].message.content, or
// an empty string when no choice carries content.
func (r *ChatCompletionResponse) FirstContent() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content.Text()
}
