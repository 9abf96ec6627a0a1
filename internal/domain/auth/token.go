package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"chat-gateway/internal/utils/apperrors"
)

// ErrInvalidToken is returned for every verification failure: malformed
// encoding, wrong signature, expiry, or a missing subject claim. Collapsing
// these into one error keeps the outward response uniform so callers cannot
// probe which check rejected a guessed token.
var ErrInvalidToken = apperrors.New(apperrors.KindUnauthorized, "invalid_token", "invalid token")

// TokenCodec issues and verifies HMAC-signed, timestamped tokens carrying a
// single subject claim. Tokens are stateless: there is no revocation, expiry
// is purely age-based at verification time.
type TokenCodec struct {
	secret []byte
	now    func() time.Time
}

// NewTokenCodec builds a codec over the configured signing secret.
func NewTokenCodec(secret string) *TokenCodec {
	return NewTokenCodecAt(secret, time.Now)
}

// NewTokenCodecAt builds a codec with an explicit clock, used by tests to
// exercise expiry without sleeping.
func NewTokenCodecAt(secret string, now func() time.Time) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		now:    now,
	}
}

// Issue signs a token embedding the subject and the current issue time.
func (c *TokenCodec) Issue(subject string) (string, error) {
	if subject == "" {
		return "", apperrors.New(apperrors.KindInternal, "empty_subject", "token subject must not be empty")
	}

	claims := jwt.RegisteredClaims{
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(c.now().UTC()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.KindInternal, "token_signing_failed", "sign token")
	}
	return signed, nil
}

// Verify checks the signature and age of a token and returns its subject.
// A token is expired once its issue time plus maxAge is in the past.
func (c *TokenCodec) Verify(tokenString string, maxAge time.Duration) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return c.now() }),
	)
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}

	if claims.IssuedAt == nil {
		return "", ErrInvalidToken
	}
	if c.now().After(claims.IssuedAt.Time.Add(maxAge)) {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
