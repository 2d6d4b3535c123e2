package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type messageRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

// ListMessages returns the match history oldest-first. Fetching marks the
// other participant's messages as read.
func (h *Handler) ListMessages(c *gin.Context) {
	messages, err := h.chat.Messages(c.Request.Context(), c.Param("matchId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage persists a message and pushes it to subscribed websocket
// clients.
func (h *Handler) SendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	message, err := h.chat.Send(c.Request.Context(), c.Param("matchId"), currentUserID(c), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}
