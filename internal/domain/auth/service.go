package auth

import (
	"crypto/subtle"
	"regexp"
	"time"

	"github.com/rs/zerolog"

	"chat-gateway/internal/utils/apperrors"
)

// TokenSubject is the claim embedded in every issued token. The gateway has a
// single shared access key, so the subject is a fixed label rather than a
// user identity.
const TokenSubject = "access"

var accessKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{8,255}$`)

// Service authenticates the shared access key and issues session tokens.
type Service struct {
	accessKey string
	ttl       time.Duration
	codec     *TokenCodec
	log       zerolog.Logger
}

// NewService wires the login service.
func NewService(accessKey string, ttl time.Duration, codec *TokenCodec, log zerolog.Logger) *Service {
	return &Service{
		accessKey: accessKey,
		ttl:       ttl,
		codec:     codec,
		log:       log.With().Str("component", "auth-service").Logger(),
	}
}

// Login validates the submitted access key and issues a fresh token together
// with its lifetime in seconds. Format violations are reported before the key
// comparison so malformed submissions never reach it.
func (s *Service) Login(accessKey string) (string, int, error) {
	if !accessKeyPattern.MatchString(accessKey) {
		return "", 0, apperrors.New(apperrors.KindValidation, "invalid_key_format", "access key has an invalid format")
	}
	if subtle.ConstantTimeCompare([]byte(accessKey), []byte(s.accessKey)) != 1 {
		return "", 0, apperrors.New(apperrors.KindUnauthorized, "wrong_key", "access key is not valid")
	}

	token, err := s.codec.Issue(TokenSubject)
	if err != nil {
		return "", 0, err
	}

	s.log.Debug().Msg("issued session token")
	return token, int(s.ttl.Seconds()), nil
}

// Authenticate verifies a bearer token and returns its subject.
func (s *Service) Authenticate(token string) (string, error) {
	return s.codec.Verify(token, s.ttl)
}
