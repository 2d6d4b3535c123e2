package handlers

import (
	"net/http"

	"heartlink-dating-app/internal/models"

	"github.com/gin-gonic/gin"
)

type reportRequest struct {
	ReportedID string  `json:"reportedId" binding:"required"`
	Reason     string  `json:"reason" binding:"required,oneof=inappropriate scam fake harassment other"`
	Details    *string `json:"details" binding:"omitempty,max=500"`
}

type blockRequest struct {
	BlockedID string `json:"blockedId" binding:"required"`
}

// CreateReport files a report against another user.
func (h *Handler) CreateReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.ReportedID == currentUserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cannot report yourself"})
		return
	}

	report := &models.Report{
		ReporterID: currentUserID(c),
		ReportedID: req.ReportedID,
		Reason:     req.Reason,
		Details:    req.Details,
	}
	if err := h.store.CreateReport(c.Request.Context(), report); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

// CreateBlock blocks another user, removing each from the other's feed.
func (h *Handler) CreateBlock(c *gin.Context) {
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if req.BlockedID == currentUserID(c) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "cannot block yourself"})
		return
	}

	block := &models.Block{
		BlockerID: currentUserID(c),
		BlockedID: req.BlockedID,
	}
	if err := h.store.CreateBlock(c.Request.Context(), block); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, block)
}
