package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chative-fare-advisor/server/internal/agent/model"
	errx "github.com/Chative-fare-advisor/server/internal/core/error"
	logx "github.com/Chative-fare-advisor/server/pkg/logger"
)

type chatHandler struct {
	svc ChatService
}

// Chat handles POST /api/chat.
func (h *chatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logx.Warn().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("invalid chat request body")
		c.JSON(http.StatusBadRequest, model.Reply{Reply: errx.MissingDataMessage})
		return
	}

	reply, err := h.svc.Handle(c.Request.Context(), req)
	if err != nil {
		status, msg := errorReply(err)
		if status >= http.StatusInternalServerError {
			logx.Error().Err(err).
				Str("request_id", c.GetString(requestIDKey)).
				Str("conversation_id", req.ConversationID).
				Msg("chat turn failed")
		}
		c.JSON(status, model.Reply{Reply: msg})
		return
	}
	c.JSON(http.StatusOK, reply)
}

// Close handles DELETE /api/chat/:conversationId.
func (h *chatHandler) Close(c *gin.Context) {
	id := c.Param("conversationId")
	if !h.svc.Close(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// Transcript handles GET /api/chat/:conversationId/transcript.
func (h *chatHandler) Transcript(c *gin.Context) {
	id := c.Param("conversationId")
	turns, err := h.svc.Transcript(c.Request.Context(), id)
	if err != nil {
		status, msg := errorReply(err)
		if status >= http.StatusInternalServerError {
			logx.Error().Err(err).
				Str("request_id", c.GetString(requestIDKey)).
				Str("conversation_id", id).
				Msg("transcript load failed")
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversationId": id, "messages": turns})
}

// Health handles GET /healthz.
func (h *chatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.svc.Sessions()})
}

// errorReply maps err to a status and a message safe to show the user.
func errorReply(err error) (int, string) {
	status := errx.StatusOf(err)
	if status >= http.StatusInternalServerError {
		return status, errx.SystemErrorMessage
	}
	var appErr *errx.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return status, appErr.Message
	}
	return status, errx.SystemErrorMessage
}
