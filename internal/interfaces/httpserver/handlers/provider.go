package handlers

import (
	"github.com/rs/zerolog"

	"chat-gateway/internal/domain/auth"
	"chat-gateway/internal/domain/chat"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Auth *AuthHandler
	Chat *ChatHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(authService *auth.Service, chatService chat.Service, log zerolog.Logger) *Provider {
	return &Provider{
		Auth: NewAuthHandler(authService, log),
		Chat: NewChatHandler(chatService, log),
	}
}
