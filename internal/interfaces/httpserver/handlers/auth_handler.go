package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"chat-gateway/internal/domain/auth"
	"chat-gateway/internal/interfaces/httpserver/requests"
	"chat-gateway/internal/interfaces/httpserver/responses"
)

// AuthHandler exposes HTTP entrypoints for login and token validation.
type AuthHandler struct {
	service *auth.Service
	log     zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service *auth.Service, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With().Str("handler", "auth").Logger(),
	}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req requests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{Error: "invalid_key_format", Message: "request body must be JSON with an access_key field"})
		return
	}

	token, expiresIn, err := h.service.Login(req.AccessKey)
	if err != nil {
		responses.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses.LoginResponse{Token: token, ExpiresIn: expiresIn})
}

// Validate handles GET /auth/validate. It runs behind the auth middleware,
// so reaching it means the token already verified.
func (h *AuthHandler) Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
