package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const subjectKey = "auth_subject"

// Authenticator verifies a bearer token and returns its subject claim.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// Auth enforces bearer-token authentication. A missing or malformed header
// and a failed verification both abort with 401; the two cases carry
// distinct codes but the same status, so callers learn nothing about why a
// presented token was rejected.
func Auth(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		subject, err := authenticator.Authenticate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(subjectKey, subject)
		c.Next()
	}
}

// SubjectFromContext returns the verified token subject, if any.
func SubjectFromContext(c *gin.Context) string {
	if val, ok := c.Get(subjectKey); ok {
		if subject, ok := val.(string); ok {
			return subject
		}
	}
	return ""
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
