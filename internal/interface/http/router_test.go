package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/outdoor-planner/internal/domain/activity"
	"github.com/yanqian/outdoor-planner/internal/domain/conversation"
	"github.com/yanqian/outdoor-planner/internal/infra/config"
	apperrors "github.com/yanqian/outdoor-planner/pkg/errors"
)

func TestRouter_CreateConversation(t *testing.T) {
	svc := &stubConversationService{
		startFn: func(ctx context.Context) (conversation.Conversation, error) {
			return conversation.Conversation{
				ID:       "conv-1",
				Messages: []conversation.Message{{ID: "m1", Text: "Hi!", Sender: conversation.SenderBot}},
			}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/conversations", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var body struct {
		ID       string                 `json:"id"`
		Messages []conversation.Message `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Equal(t, "conv-1", body.ID)
	require.Len(t, body.Messages, 1)
}

func TestRouter_PostMessage(t *testing.T) {
	svc := &stubConversationService{
		handleTurnFn: func(ctx context.Context, convID, text string) ([]conversation.Message, error) {
			require.Equal(t, "conv-1", convID)
			require.Equal(t, "I'm going hiking", text)
			return []conversation.Message{{ID: "m2", Text: "Hiking it is!", Sender: conversation.SenderBot}}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/conversations/conv-1/messages", `{"text":"I'm going hiking"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body messagesResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Messages, 1)
	require.Equal(t, "Hiking it is!", body.Messages[0].Text)
}

func TestRouter_PostMessageMissingText(t *testing.T) {
	recorder := performRequest(http.MethodPost, "/api/v1/conversations/conv-1/messages", `{}`, newRouterUnderTest(t, &stubConversationService{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
}

func TestRouter_PostMessageUnknownConversation(t *testing.T) {
	svc := &stubConversationService{
		handleTurnFn: func(ctx context.Context, convID, text string) ([]conversation.Message, error) {
			return nil, apperrors.Wrap("conversation_not_found", "conversation does not exist", nil)
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/conversations/missing/messages", `{"text":"hi"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusNotFound, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "conversation_not_found", errBody["error"]["code"])
}

func TestRouter_QuickReply(t *testing.T) {
	svc := &stubConversationService{
		quickReplyFn: func(ctx context.Context, convID string, act activity.Type) ([]conversation.Message, error) {
			require.Equal(t, activity.Camping, act)
			return []conversation.Message{{ID: "m3", Text: "Camping!", Sender: conversation.SenderBot}}, nil
		},
	}

	recorder := performRequest(http.MethodPost, "/api/v1/conversations/conv-1/quick-reply", `{"activity":"camping"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func TestRouter_QuickReplyUnknownActivity(t *testing.T) {
	recorder := performRequest(http.MethodPost, "/api/v1/conversations/conv-1/quick-reply", `{"activity":"skydiving"}`, newRouterUnderTest(t, &stubConversationService{}))
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRouter_GetMessages(t *testing.T) {
	svc := &stubConversationService{
		historyFn: func(ctx context.Context, convID string) ([]conversation.Message, error) {
			return []conversation.Message{
				{ID: "m1", Sender: conversation.SenderBot},
				{ID: "m2", Sender: conversation.SenderUser},
			}, nil
		},
	}

	recorder := performRequest(http.MethodGet, "/api/v1/conversations/conv-1/messages", "", newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var body messagesResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Messages, 2)
}

func TestRouter_Healthz(t *testing.T) {
	recorder := performRequest(http.MethodGet, "/healthz", "", newRouterUnderTest(t, &stubConversationService{}))
	require.Equal(t, http.StatusOK, recorder.Code)
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, svc conversation.Service) *http.Server {
	t.Helper()
	logger := newTestLogger()
	handler := NewHandler(svc, logger)
	ws := NewWSHandler(svc, nil, logger)
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return NewRouter(cfg, handler, ws, logger)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubConversationService struct {
	startFn      func(ctx context.Context) (conversation.Conversation, error)
	handleTurnFn func(ctx context.Context, convID, text string) ([]conversation.Message, error)
	quickReplyFn func(ctx context.Context, convID string, act activity.Type) ([]conversation.Message, error)
	resetFn      func(ctx context.Context, convID string) ([]conversation.Message, error)
	historyFn    func(ctx context.Context, convID string) ([]conversation.Message, error)
}

func (s *stubConversationService) Start(ctx context.Context) (conversation.Conversation, error) {
	if s.startFn != nil {
		return s.startFn(ctx)
	}
	return conversation.Conversation{}, nil
}

func (s *stubConversationService) HandleTurn(ctx context.Context, convID, text string) ([]conversation.Message, error) {
	if s.handleTurnFn != nil {
		return s.handleTurnFn(ctx, convID, text)
	}
	return nil, nil
}

func (s *stubConversationService) QuickReply(ctx context.Context, convID string, act activity.Type) ([]conversation.Message, error) {
	if s.quickReplyFn != nil {
		return s.quickReplyFn(ctx, convID, act)
	}
	return nil, nil
}

func (s *stubConversationService) Reset(ctx context.Context, convID string) ([]conversation.Message, error) {
	if s.resetFn != nil {
		return s.resetFn(ctx, convID)
	}
	return nil, nil
}

func (s *stubConversationService) History(ctx context.Context, convID string) ([]conversation.Message, error) {
	if s.historyFn != nil {
		return s.historyFn(ctx, convID)
	}
	return nil, nil
}
