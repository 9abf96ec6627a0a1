package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chat-gateway/internal/domain/chat"
	"chat-gateway/internal/interfaces/httpserver/requests"
	"chat-gateway/internal/interfaces/httpserver/responses"
)

// ChatHandler exposes HTTP entrypoints for the message log.
type ChatHandler struct {
	service chat.Service
	log     zerolog.Logger
}

// NewChatHandler constructs the handler.
func NewChatHandler(service chat.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		log:     log.With().Str("handler", "chat").Logger(),
	}
}

// List handles GET /messages.
func (h *ChatHandler) List(c *gin.Context) {
	messages, err := h.service.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list messages failed")
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.MessagesFromDomain(messages))
}

// Send handles POST /messages.
func (h *ChatHandler) Send(c *gin.Context) {
	var req requests.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "empty_message", Message: "request body must be JSON with a text field"})
		return
	}

	exchange, err := h.service.Send(c.Request.Context(), req.Text)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.SendMessageResponse{
		User:      responses.MessageFromDomain(exchange.User),
		Assistant: responses.MessageFromDomain(exchange.Assistant),
	})
}
