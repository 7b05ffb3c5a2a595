package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrisnap/nutrisnap/backend/internal/middleware"
	"github.com/nutrisnap/nutrisnap/backend/internal/service"
	"github.com/nutrisnap/nutrisnap/backend/internal/types"
)

// ProfileHandler handles the nutrition profile endpoints.
type ProfileHandler struct {
	profileService *service.ProfileService
	validator      middleware.TokenValidator
}

func NewProfileHandler(profileService *service.ProfileService, validator middleware.TokenValidator) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		validator:      validator,
	}
}

// RegisterRoutes registers the profile routes.
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.validator))
	{
		profile.GET("", h.GetProfile)
		profile.PUT("", h.UpdateProfile)
		profile.GET("/allergies", h.GetAllergies)
	}
}

// GetAllergies returns just the allergy tags.
func (h *ProfileHandler) GetAllergies(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	allergies, err := h.profileService.GetAllergies(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get allergies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"allergies": allergies})
}

// GetProfile returns the profile plus its allergy tags.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get profile"})
		return
	}

	allergies, err := h.profileService.GetAllergies(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get allergies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile":   profile,
		"allergies": allergies,
	})
}

// UpdateProfile applies a partial profile edit.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// currentUserID pulls the authenticated user ID out of the gin context,
// writing the 401 itself when it is missing.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return uuid.Nil, false
	}
	return userID, true
}
