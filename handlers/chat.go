// File: handlers/chat.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	conversationRepo "farewise/database/repository/conversation"
	"farewise/models"
	"farewise/services/dialogue"
	"farewise/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversational endpoints.
type ChatHandler struct {
	Convo   dialogue.ConversationService
	Records conversationRepo.TranscriptRepository
}

func NewChatHandler(convo dialogue.ConversationService, records conversationRepo.TranscriptRepository) *ChatHandler {
	return &ChatHandler{Convo: convo, Records: records}
}

// HandleChat runs one dialogue turn.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	resp, err := h.Convo.Advance(c.Request.Context(), req)
	if err != nil {
		utils.GetLogger().Error("dialogue turn failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetSessionHandler returns a session's current state and transcript.
func (h *ChatHandler) GetSessionHandler(c *gin.Context) {
	id := c.Param("id")
	session, err := h.Convo.GetSession(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, dialogue.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		utils.GetLogger().Error("failed to load session", zap.String("session", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return
	}

	var transcript []models.TurnRecord
	if h.Records != nil {
		transcript, err = h.Records.GetBySessionID(c.Request.Context(), id)
		if err != nil {
			utils.GetLogger().Warn("failed to load transcript", zap.String("session", id), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"session": session, "transcript": transcript})
}

// ResetSessionHandler discards a session so the user can start over.
func (h *ChatHandler) ResetSessionHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.Convo.Reset(c.Request.Context(), id); err != nil {
		utils.GetLogger().Error("failed to reset session", zap.String("session", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
