package responses

import (
	"time"

	"github.com/gin-gonic/gin"

	"chat-gateway/internal/domain/chat"
	"chat-gateway/internal/utils/apperrors"
)

// ErrorResponse is the uniform error body. Error carries a stable machine
// code; Message is a short human-readable summary. Internal diagnostic detail
// never reaches the client.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HandleError maps a domain error to its outward status and code.
func HandleError(c *gin.Context, err error) {
	kind := apperrors.KindOf(err)
	c.AbortWithStatusJSON(apperrors.HTTPStatus(kind), ErrorResponse{
		Error:   apperrors.CodeOf(err),
		Message: apperrors.MessageOf(err),
	})
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// MessagePayload is one chat message as returned to clients.
type MessagePayload struct {
	ID        uint      `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// SendMessageResponse pairs the stored user message with the generated reply.
type SendMessageResponse struct {
	User      MessagePayload `json:"user"`
	Assistant MessagePayload `json:"assistant"`
}

// MessageFromDomain maps the domain message to its DTO.
func MessageFromDomain(m chat.Message) MessagePayload {
	return MessagePayload{
		ID:        m.ID,
		Role:      string(m.Role),
		Text:      m.Text,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

// MessagesFromDomain maps a message slice, always yielding a non-nil list.
func MessagesFromDomain(messages []chat.Message) []MessagePayload {
	payloads := make([]MessagePayload, 0, len(messages))
	for _, m := range messages {
		payloads = append(payloads, MessageFromDomain(m))
	}
	return payloads
}
