package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"chat-gateway/internal/config"
	"chat-gateway/internal/domain/auth"
	"chat-gateway/internal/domain/chat"
	"chat-gateway/internal/domain/llm"
	"chat-gateway/internal/infrastructure/database"
	messagerepo "chat-gateway/internal/infrastructure/repository/message"
	"chat-gateway/internal/interfaces/httpserver/responses"
)

type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) GenerateReply(ctx context.Context, userText string) (string, error) {
	return s.reply, s.err
}

func newTestGateway(t *testing.T, provider llm.Provider) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServiceName:     "chat-gateway",
		Environment:     "test",
		AccessKey:       "correct-key-123",
		TokenSecret:     "test-secret",
		TokenTTLSeconds: 86400,
	}

	db, err := database.Connect(database.Config{
		Path:     filepath.Join(t.TempDir(), "chat.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(context.Background(), db, zerolog.Nop()))

	codec := auth.NewTokenCodec(cfg.TokenSecret)
	authService := auth.NewService(cfg.AccessKey, cfg.TokenTTL(), codec, zerolog.Nop())
	chatService := chat.NewService(messagerepo.New(db), provider, zerolog.Nop())

	return New(cfg, zerolog.Nop(), authService, chatService).Engine()
}

func doJSON(handler http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, handler http.Handler) string {
	t.Helper()
	rec := doJSON(handler, http.MethodPost, "/auth/login", "", `{"access_key":"correct-key-123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp responses.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestGateway_FullExchange(t *testing.T) {
	handler := newTestGateway(t, &stubProvider{reply: "Simmer it gently."})
	token := login(t, handler)

	// Fresh log is empty.
	rec := doJSON(handler, http.MethodGet, "/messages", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	// One exchange persists both turns.
	rec = doJSON(handler, http.MethodPost, "/messages", token, `{"text":"How long for risotto?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var sent responses.SendMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sent))
	assert.Equal(t, uint(1), sent.User.ID)
	assert.Equal(t, "user", sent.User.Role)
	assert.Equal(t, "How long for risotto?", sent.User.Text)
	assert.Equal(t, uint(2), sent.Assistant.ID)
	assert.Equal(t, "assistant", sent.Assistant.Role)
	assert.Equal(t, "Simmer it gently.", sent.Assistant.Text)

	// The log reflects the exchange in order.
	rec = doJSON(handler, http.MethodGet, "/messages", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []responses.MessagePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "user", listed[0].Role)
	assert.Equal(t, "assistant", listed[1].Role)
}

func TestGateway_AuthRequired(t *testing.T) {
	handler := newTestGateway(t, &stubProvider{reply: "ok"})

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/auth/validate"},
		{http.MethodGet, "/messages"},
		{http.MethodPost, "/messages"},
	}
	for _, p := range paths {
		rec := doJSON(handler, p.method, p.path, "", `{"text":"hi"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", p.method, p.path)
		assert.JSONEq(t, `{"error":"missing_token"}`, rec.Body.String(), "%s %s", p.method, p.path)
	}

	rec := doJSON(handler, http.MethodGet, "/messages", "not-a-real-token", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_token"}`, rec.Body.String())
}

func TestGateway_ValidateEndpoint(t *testing.T) {
	handler := newTestGateway(t, &stubProvider{reply: "ok"})
	token := login(t, handler)

	rec := doJSON(handler, http.MethodGet, "/auth/validate", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestGateway_ExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		ServiceName:     "chat-gateway",
		Environment:     "test",
		AccessKey:       "correct-key-123",
		TokenSecret:     "test-secret",
		TokenTTLSeconds: 86400,
	}

	db, err := database.Connect(database.Config{
		Path:     filepath.Join(t.TempDir(), "chat.db"),
		LogLevel: gormlogger.Silent,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(context.Background(), db, zerolog.Nop()))

	// Issue the token with a codec whose clock sits one day in the past, so
	// the server-side verification sees it as past its lifetime.
	staleCodec := auth.NewTokenCodecAt("test-secret", func() time.Time {
		return time.Now().Add(-25 * time.Hour)
	})
	staleToken, err := staleCodec.Issue(auth.TokenSubject)
	require.NoError(t, err)

	codec := auth.NewTokenCodec(cfg.TokenSecret)
	authService := auth.NewService(cfg.AccessKey, cfg.TokenTTL(), codec, zerolog.Nop())
	chatService := chat.NewService(messagerepo.New(db), &stubProvider{reply: "ok"}, zerolog.Nop())
	handler := New(cfg, zerolog.Nop(), authService, chatService).Engine()

	rec := doJSON(handler, http.MethodGet, "/messages", staleToken, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_token"}`, rec.Body.String())
}

func TestGateway_ProviderFailureKeepsUserMessage(t *testing.T) {
	handler := newTestGateway(t, &stubProvider{err: context.DeadlineExceeded})
	token := login(t, handler)

	rec := doJSON(handler, http.MethodPost, "/messages", token, `{"text":"hello"}`)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var errResp responses.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "llm_request_failed", errResp.Error)

	rec = doJSON(handler, http.MethodGet, "/messages", token, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []responses.MessagePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "user", listed[0].Role)
	assert.Equal(t, "hello", listed[0].Text)
}

func TestGateway_HealthEndpoints(t *testing.T) {
	handler := newTestGateway(t, &stubProvider{reply: "ok"})

	for _, path := range []string{"/", "/healthz", "/readyz"} {
		rec := doJSON(handler, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}
