package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outdoor-planner/internal/domain/activity"
	"github.com/yanqian/outdoor-planner/internal/domain/conversation"
	apperrors "github.com/yanqian/outdoor-planner/pkg/errors"
)

// Handler wires the HTTP transport to the dialogue controller.
type Handler struct {
	convSvc conversation.Service
	logger  *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(convSvc conversation.Service, logger *slog.Logger) *Handler {
	return &Handler{
		convSvc: convSvc,
		logger:  logger.With("component", "http.handler"),
	}
}

type turnRequest struct {
	Text string `json:"text" binding:"required"`
}

type quickReplyRequest struct {
	Activity string `json:"activity" binding:"required"`
}

type messagesResponse struct {
	Messages []conversation.Message `json:"messages"`
}

// CreateConversation starts a new chat and returns the greeting.
func (h *Handler) CreateConversation(c *gin.Context) {
	conv, err := h.convSvc.Start(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "conversation_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":       conv.ID,
		"messages": conv.Messages,
	})
}

// PostMessage submits one user turn and returns the bot replies.
func (h *Handler) PostMessage(c *gin.Context) {
	var req turnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	replies, err := h.convSvc.HandleTurn(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		abortWithError(c, turnError(err))
		return
	}
	c.JSON(http.StatusOK, messagesResponse{Messages: replies})
}

// QuickReply selects an activity directly, bypassing text classification.
func (h *Handler) QuickReply(c *gin.Context) {
	var req quickReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	act, ok := activity.Parse(req.Activity)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "unknown activity: "+req.Activity, nil))
		return
	}

	replies, err := h.convSvc.QuickReply(c.Request.Context(), c.Param("id"), act)
	if err != nil {
		abortWithError(c, turnError(err))
		return
	}
	c.JSON(http.StatusOK, messagesResponse{Messages: replies})
}

// GetMessages returns the full transcript.
func (h *Handler) GetMessages(c *gin.Context) {
	messages, err := h.convSvc.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, turnError(err))
		return
	}
	c.JSON(http.StatusOK, messagesResponse{Messages: messages})
}

// ResetConversation restarts the dialogue from the first question.
func (h *Handler) ResetConversation(c *gin.Context) {
	replies, err := h.convSvc.Reset(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, turnError(err))
		return
	}
	c.JSON(http.StatusOK, messagesResponse{Messages: replies})
}

func turnError(err error) *HTTPError {
	switch {
	case apperrors.IsCode(err, "conversation_not_found"):
		return NewHTTPError(http.StatusNotFound, "conversation_not_found", errMessage(err), err)
	case apperrors.IsCode(err, "invalid_input"):
		return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, "chat_failed", errMessage(err), err)
	}
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
