package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrisnap/nutrisnap/backend/internal/service"
	"github.com/nutrisnap/nutrisnap/backend/internal/types"
)

// AnalyzeHandler handles the public meal analysis endpoints.
type AnalyzeHandler struct {
	visionService *service.VisionService
	searchService *service.NutritionSearchService
	draftService  *service.DraftService
}

func NewAnalyzeHandler(visionService *service.VisionService, searchService *service.NutritionSearchService, draftService *service.DraftService) *AnalyzeHandler {
	return &AnalyzeHandler{
		visionService: visionService,
		searchService: searchService,
		draftService:  draftService,
	}
}

// RegisterRoutes registers the analysis routes. These stay public: the
// client calls analyze before the user has decided to log anything.
func (h *AnalyzeHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	{
		meals.POST("/analyze", h.AnalyzeMeal)
		meals.POST("/search", h.SearchMeal)
	}
}

// AnalyzeMeal runs the vision pipeline on an image URL.
func (h *AnalyzeHandler) AnalyzeMeal(c *gin.Context) {
	if h.visionService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "meal photo analysis is not configured",
		})
		return
	}

	var req types.AnalyzeMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "imageUrl is required",
		})
		return
	}

	result, err := h.visionService.AnalyzeMealImage(c.Request.Context(), req.ImageURL, req.UserProfile)
	if err != nil {
		// Fetch and upstream failures alike are the pipeline's fault,
		// not the caller's: everything past binding is a 500.
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   userFacingAnalyzeError(err),
		})
		return
	}

	if h.draftService != nil {
		draftID, err := h.draftService.SaveDraft(c.Request.Context(), result)
		if err != nil {
			log.Printf("[AnalyzeHandler] failed to save draft: %v", err)
		} else {
			result.DraftID = draftID
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"mealData":       result.MealData,
		"recommendation": result.Recommendation,
		"draftId":        result.DraftID,
	})
}

// userFacingAnalyzeError maps pipeline failures to the messages the
// client surfaces verbatim.
func userFacingAnalyzeError(err error) string {
	switch {
	case errors.Is(err, service.ErrImageFetch):
		return "could not fetch the image, please check the URL"
	case errors.Is(err, service.ErrParseResponse):
		return service.ErrParseResponse.Error()
	case errors.Is(err, service.ErrUnidentifiable):
		return service.ErrUnidentifiable.Error()
	}
	log.Printf("[AnalyzeHandler] analysis failed: %v", err)
	return "failed to analyze the meal, please try again"
}

// SearchMeal looks up nutrition for a text food description.
func (h *AnalyzeHandler) SearchMeal(c *gin.Context) {
	if h.searchService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "nutrition search is not configured",
		})
		return
	}

	var req types.MealSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "query is required",
		})
		return
	}

	result, err := h.searchService.Search(c.Request.Context(), req.Query)
	if err != nil {
		// A query that matches nothing is a clean miss, flagged in the
		// body rather than the status line.
		if errors.Is(err, service.ErrNoNutritionData) {
			c.JSON(http.StatusOK, gin.H{
				"success": false,
				"message": service.ErrNoNutritionData.Error(),
			})
			return
		}
		log.Printf("[AnalyzeHandler] search failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "failed to search nutrition data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"mealData": result,
	})
}
