package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListMatches returns the authenticated user's matches, newest first, with
// both participants' profiles preloaded.
func (h *Handler) ListMatches(c *gin.Context) {
	matches, err := h.chat.MatchesForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

// GetMatch returns a single match the user participates in.
func (h *Handler) GetMatch(c *gin.Context) {
	match, err := h.chat.Match(c.Request.Context(), c.Param("matchId"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, match)
}
