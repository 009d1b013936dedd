package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/yanqian/outdoor-planner/internal/domain/activity"
	"github.com/yanqian/outdoor-planner/internal/domain/conversation"
)

// wsInbound is a client frame: a user turn, a quick reply, or a reset.
type wsInbound struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	Activity string `json:"activity,omitempty"`
}

// wsOutbound is pushed to the client as the bot produces messages.
type wsOutbound struct {
	Type           string                `json:"type"`
	ConversationID string                `json:"conversationId,omitempty"`
	Message        *conversation.Message `json:"message,omitempty"`
	Error          string                `json:"error,omitempty"`
}

// WSHandler serves the chat over a WebSocket so bot replies reach the UI
// as they are produced rather than in one response body.
type WSHandler struct {
	convSvc  conversation.Service
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWSHandler constructs the WebSocket chat handler.
func NewWSHandler(convSvc conversation.Service, allowedOrigins []string, logger *slog.Logger) *WSHandler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}
	return &WSHandler{
		convSvc: convSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if len(origins) == 0 {
					return true
				}
				origin := r.Header.Get("Origin")
				if origin == "" {
					// Allow non-browser clients.
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
		logger: logger.With("component", "http.ws"),
	}
}

func (h *WSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()

	convID := r.URL.Query().Get("conversation_id")
	if convID == "" {
		conv, err := h.convSvc.Start(ctx)
		if err != nil {
			h.logger.Error("failed to start conversation", "error", err)
			_ = conn.WriteJSON(wsOutbound{Type: "error", Error: "could not start a conversation"})
			return
		}
		convID = conv.ID
		if err := conn.WriteJSON(wsOutbound{Type: "connected", ConversationID: convID}); err != nil {
			return
		}
		h.pushMessages(conn, convID, conv.Messages)
	} else if err := conn.WriteJSON(wsOutbound{Type: "connected", ConversationID: convID}); err != nil {
		return
	}

	for {
		var inbound wsInbound
		if err := conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", "conversation_id", convID, "error", err)
			}
			return
		}
		if !h.handleFrame(ctx, conn, convID, inbound) {
			return
		}
	}
}

func (h *WSHandler) handleFrame(ctx context.Context, conn *websocket.Conn, convID string, inbound wsInbound) bool {
	var (
		replies []conversation.Message
		err     error
	)

	switch inbound.Type {
	case "message":
		if err := conn.WriteJSON(wsOutbound{Type: "typing", ConversationID: convID}); err != nil {
			return false
		}
		replies, err = h.convSvc.HandleTurn(ctx, convID, inbound.Text)
	case "quick_reply":
		act, ok := activity.Parse(inbound.Activity)
		if !ok {
			return conn.WriteJSON(wsOutbound{Type: "error", ConversationID: convID, Error: "unknown activity"}) == nil
		}
		replies, err = h.convSvc.QuickReply(ctx, convID, act)
	case "reset":
		replies, err = h.convSvc.Reset(ctx, convID)
	default:
		return conn.WriteJSON(wsOutbound{Type: "error", ConversationID: convID, Error: "unknown frame type"}) == nil
	}

	if err != nil {
		h.logger.Warn("turn failed", "conversation_id", convID, "error", err)
		return conn.WriteJSON(wsOutbound{Type: "error", ConversationID: convID, Error: "sorry, something went wrong"}) == nil
	}
	return h.pushMessages(conn, convID, replies)
}

func (h *WSHandler) pushMessages(conn *websocket.Conn, convID string, messages []conversation.Message) bool {
	for i := range messages {
		frame := wsOutbound{Type: "message", ConversationID: convID, Message: &messages[i]}
		if err := conn.WriteJSON(frame); err != nil {
			return false
		}
	}
	return true
}
