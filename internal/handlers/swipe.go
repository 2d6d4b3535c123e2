package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type swipeRequest struct {
	SwipedID  string `json:"swipedId" binding:"required"`
	Direction string `json:"direction" binding:"required,oneof=like pass"`
}

// CreateSwipe records a swipe and reports whether it completed a match.
func (h *Handler) CreateSwipe(c *gin.Context) {
	var req swipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result, err := h.swipes.RecordSwipe(c.Request.Context(), currentUserID(c), req.SwipedID, req.Direction)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"swipe":   result.Swipe,
		"isMatch": result.IsMatch,
	})
}

// DailySwipeStatus reports today's swipe count and the limit. Premium users
// get a null limit.
func (h *Handler) DailySwipeStatus(c *gin.Context) {
	count, limit, err := h.swipes.DailyStatus(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": count,
		"limit": limit,
	})
}
