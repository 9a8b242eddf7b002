package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"message-hub/internal/models"
)

// HistoryProvider exposes the bounded history query of the session gateway.
type HistoryProvider interface {
	History(limit int) []models.Event
}

// MessageHandler serves the historical message query endpoint.
type MessageHandler struct {
	history HistoryProvider
}

// NewMessageHandler builds a MessageHandler.
func NewMessageHandler(history HistoryProvider) *MessageHandler {
	return &MessageHandler{history: history}
}

// GetMessages returns the most recent messages. The limit query parameter
// defaults to 50 when absent or non-numeric; there is no upper bound.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil {
		limit = 0
	}

	c.JSON(http.StatusOK, gin.H{"messages": h.history.History(limit)})
}
