package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chat-gateway/internal/domain/chat"
	"chat-gateway/internal/interfaces/httpserver/responses"
	"chat-gateway/internal/utils/apperrors"
)

type mockChatService struct {
	sendFunc func(ctx context.Context, text string) (*chat.Exchange, error)
	listFunc func(ctx context.Context) ([]chat.Message, error)
}

func (m *mockChatService) Send(ctx context.Context, text string) (*chat.Exchange, error) {
	return m.sendFunc(ctx, text)
}

func (m *mockChatService) List(ctx context.Context) ([]chat.Message, error) {
	return m.listFunc(ctx)
}

func newChatTestRouter(service chat.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewChatHandler(service, zerolog.Nop())

	engine := gin.New()
	engine.GET("/messages", handler.List)
	engine.POST("/messages", handler.Send)
	return engine
}

func TestChatHandler_ListEmpty(t *testing.T) {
	router := newChatTestRouter(&mockChatService{
		listFunc: func(ctx context.Context) ([]chat.Message, error) {
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String(), "an empty log serializes as an empty array, not null")
}

func TestChatHandler_List(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	router := newChatTestRouter(&mockChatService{
		listFunc: func(ctx context.Context) ([]chat.Message, error) {
			return []chat.Message{
				{ID: 1, Role: chat.RoleUser, Text: "hi", CreatedAt: created},
				{ID: 2, Role: chat.RoleAssistant, Text: "hello", CreatedAt: created},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload []responses.MessagePayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Len(t, payload, 2)
	assert.Equal(t, uint(1), payload[0].ID)
	assert.Equal(t, "user", payload[0].Role)
	assert.Equal(t, "assistant", payload[1].Role)
}

func TestChatHandler_SendSuccess(t *testing.T) {
	router := newChatTestRouter(&mockChatService{
		sendFunc: func(ctx context.Context, text string) (*chat.Exchange, error) {
			assert.Equal(t, "hello", text)
			return &chat.Exchange{
				User:      chat.Message{ID: 1, Role: chat.RoleUser, Text: "hello"},
				Assistant: chat.Message{ID: 2, Role: chat.RoleAssistant, Text: "hi there"},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"text":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp responses.SendMessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "hello", resp.User.Text)
	assert.Equal(t, "hi there", resp.Assistant.Text)
}

func TestChatHandler_SendMalformedBody(t *testing.T) {
	router := newChatTestRouter(&mockChatService{
		sendFunc: func(ctx context.Context, text string) (*chat.Exchange, error) {
			t.Fatal("service must not be called for malformed bodies")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader("not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp responses.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "empty_message", resp.Error)
}

func TestChatHandler_SendErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperrors.New(apperrors.KindValidation, "message_too_long", "too long"), http.StatusBadRequest, "message_too_long"},
		{"upstream", apperrors.New(apperrors.KindUpstream, "llm_request_failed", "failed"), http.StatusBadGateway, "llm_request_failed"},
		{"empty reply", apperrors.New(apperrors.KindEmptyReply, "empty_model_response", "empty"), http.StatusBadGateway, "empty_model_response"},
		{"configuration", apperrors.New(apperrors.KindConfiguration, "llm_provider_not_configured", "none"), http.StatusInternalServerError, "llm_provider_not_configured"},
		{"storage", apperrors.New(apperrors.KindStorage, "storage_unavailable", "down"), http.StatusInternalServerError, "storage_unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newChatTestRouter(&mockChatService{
				sendFunc: func(ctx context.Context, text string) (*chat.Exchange, error) {
					return nil, tc.err
				},
			})

			req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"text":"hello"}`))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)

			var resp responses.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.wantCode, resp.Error)
		})
	}
}
