package llm

import (
	"context"
	"fmt"
)

// Provider defines the contract for generating one assistant reply from the
// latest user message. Implementations own their transport and normalize
// provider-specific payloads into plain text; they never leak raw transport
// errors to callers.
type Provider interface {
	GenerateReply(ctx context.Context, userText string) (string, error)
}

// BuildPrompt concatenates the fixed system prompt with the user's text.
// Prior conversation history is intentionally not included.
func BuildPrompt(systemPrompt, userText string) string {
	return fmt.Sprintf("%s\n\nUser: %s\nAssistant:", systemPrompt, userText)
}
