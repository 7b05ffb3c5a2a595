package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutrisnap/nutrisnap/backend/internal/middleware"
	"github.com/nutrisnap/nutrisnap/backend/internal/service"
)

// DashboardHandler assembles the home-screen view: today's totals plus
// the derived health metrics and recommendation.
type DashboardHandler struct {
	profileService *service.ProfileService
	mealService    *service.MealService
	validator      middleware.TokenValidator
}

func NewDashboardHandler(profileService *service.ProfileService, mealService *service.MealService, validator middleware.TokenValidator) *DashboardHandler {
	return &DashboardHandler{
		profileService: profileService,
		mealService:    mealService,
		validator:      validator,
	}
}

// RegisterRoutes registers the dashboard route.
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	dashboard.Use(middleware.AuthMiddleware(h.validator))
	{
		dashboard.GET("", h.GetDashboard)
	}
}

// GetDashboard returns today's summary and the full metric set.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.mealService.DailySummary(c.Request.Context(), userID, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get daily summary"})
		return
	}

	metrics, err := h.profileService.Metrics(c.Request.Context(), userID, int(summary.TotalCalories))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute metrics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"today":   summary,
		"metrics": metrics,
	})
}
