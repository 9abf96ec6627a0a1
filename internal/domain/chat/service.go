package chat

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"chat-gateway/internal/domain/llm"
	"chat-gateway/internal/utils/apperrors"
)

// Service orchestrates one chat exchange: validate, persist the user message,
// generate a reply, persist it, return both records.
type Service interface {
	Send(ctx context.Context, rawText string) (*Exchange, error)
	List(ctx context.Context) ([]Message, error)
}

// ServiceImpl provides the domain implementation.
type ServiceImpl struct {
	repo     Repository
	provider llm.Provider
	log      zerolog.Logger
}

// NewService wires dependencies. The provider may be nil when no language
// model is configured; sends then fail with a configuration error while the
// rest of the gateway keeps working.
func NewService(repo Repository, provider llm.Provider, log zerolog.Logger) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		provider: provider,
		log:      log.With().Str("component", "chat-service").Logger(),
	}
}

// Send handles one user submission. The user message stays persisted even
// when reply generation fails, so a failed generation never silently loses
// what the user submitted.
func (s *ServiceImpl) Send(ctx context.Context, rawText string) (*Exchange, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, apperrors.New(apperrors.KindValidation, "empty_message", "message text must not be empty")
	}
	if utf8.RuneCountInString(text) > MaxMessageRunes {
		return nil, apperrors.New(apperrors.KindValidation, "message_too_long", "message text exceeds the length limit")
	}

	userMsg, err := s.repo.Append(ctx, RoleUser, text)
	if err != nil {
		return nil, err
	}

	if s.provider == nil {
		return nil, apperrors.New(apperrors.KindConfiguration, "llm_provider_not_configured", "no language model provider is configured")
	}

	reply, err := s.provider.GenerateReply(ctx, text)
	if err != nil {
		s.log.Warn().Err(err).Uint("user_message_id", userMsg.ID).Msg("reply generation failed")
		return nil, apperrors.Wrap(err, apperrors.KindUpstream, "llm_request_failed", "language model request failed")
	}

	assistantMsg, err := s.repo.Append(ctx, RoleAssistant, reply)
	if err != nil {
		return nil, err
	}

	return &Exchange{User: *userMsg, Assistant: *assistantMsg}, nil
}

// List returns the message log in insertion order.
func (s *ServiceImpl) List(ctx context.Context) ([]Message, error) {
	return s.repo.List(ctx, DefaultListLimit)
}

var _ Service = (*ServiceImpl)(nil)
