package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Discover returns the swipe candidate feed for the authenticated user.
func (h *Handler) Discover(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	candidates, err := h.discovery.Candidates(c.Request.Context(), currentUserID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}
