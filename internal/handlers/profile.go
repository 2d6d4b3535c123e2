package handlers

import (
	"errors"
	"net/http"

	"heartlink-dating-app/internal/apperrors"
	"heartlink-dating-app/internal/models"

	"github.com/gin-gonic/gin"
)

type profileRequest struct {
	Bio         *string  `json:"bio" binding:"omitempty,max=500"`
	Age         int      `json:"age" binding:"required,gte=18,lte=100"`
	Gender      string   `json:"gender" binding:"required,max=30"`
	Location    *string  `json:"location" binding:"omitempty,max=100"`
	Interests   []string `json:"interests" binding:"omitempty,max=20,dive,max=50"`
	Photos      []string `json:"photos" binding:"required,min=1,max=9,dive,max=500"`
	LookingFor  string   `json:"lookingFor" binding:"omitempty,max=30"`
	AgeRangeMin int      `json:"ageRangeMin" binding:"omitempty,gte=18,lte=100"`
	AgeRangeMax int      `json:"ageRangeMax" binding:"omitempty,gte=18,lte=100"`
	MaxDistance int      `json:"maxDistance" binding:"omitempty,gte=1,lte=500"`
}

// GetMyProfile returns the authenticated user's profile, 404 if they have
// not created one yet.
func (h *Handler) GetMyProfile(c *gin.Context) {
	profile, err := h.store.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// CreateProfile creates or replaces the authenticated user's profile.
// Saving a valid profile always marks it complete, which unlocks discovery.
func (h *Handler) CreateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.AgeRangeMin == 0 {
		req.AgeRangeMin = 18
	}
	if req.AgeRangeMax == 0 {
		req.AgeRangeMax = 99
	}
	if req.AgeRangeMin > req.AgeRangeMax {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ageRangeMin must not exceed ageRangeMax"})
		return
	}
	if req.MaxDistance == 0 {
		req.MaxDistance = 50
	}
	if req.LookingFor == "" {
		req.LookingFor = models.LookingForEveryone
	}

	userID := currentUserID(c)
	profile := &models.Profile{
		UserID:            userID,
		Bio:               req.Bio,
		Age:               req.Age,
		Gender:            req.Gender,
		Location:          req.Location,
		Interests:         req.Interests,
		Photos:            req.Photos,
		LookingFor:        req.LookingFor,
		AgeRangeMin:       req.AgeRangeMin,
		AgeRangeMax:       req.AgeRangeMax,
		MaxDistance:       req.MaxDistance,
		IsProfileComplete: true,
	}

	// Premium status is not client-settable; carry it over on updates.
	if existing, err := h.store.GetProfile(c.Request.Context(), userID); err == nil {
		profile.IsPremium = existing.IsPremium
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		respondError(c, err)
		return
	}

	if err := h.store.UpsertProfile(c.Request.Context(), profile); err != nil {
		respondError(c, err)
		return
	}

	saved, err := h.store.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// GetProfileByID returns another user's profile.
func (h *Handler) GetProfileByID(c *gin.Context) {
	profile, err := h.store.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
