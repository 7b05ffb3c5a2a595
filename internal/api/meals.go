package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nutrisnap/nutrisnap/backend/internal/middleware"
	"github.com/nutrisnap/nutrisnap/backend/internal/models"
	"github.com/nutrisnap/nutrisnap/backend/internal/nutrition"
	"github.com/nutrisnap/nutrisnap/backend/internal/service"
	"github.com/nutrisnap/nutrisnap/backend/internal/types"
)

// MealHandler handles meal logging and history endpoints.
type MealHandler struct {
	mealService    *service.MealService
	profileService *service.ProfileService
	draftService   *service.DraftService
	validator      middleware.TokenValidator
}

func NewMealHandler(mealService *service.MealService, profileService *service.ProfileService, draftService *service.DraftService, validator middleware.TokenValidator) *MealHandler {
	return &MealHandler{
		mealService:    mealService,
		profileService: profileService,
		draftService:   draftService,
		validator:      validator,
	}
}

// RegisterRoutes registers the meal routes.
func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup) {
	meals := router.Group("/meals")
	meals.Use(middleware.AuthMiddleware(h.validator))
	{
		meals.POST("", h.LogMeal)
		meals.GET("", h.ListMeals)
		meals.GET("/daily", h.DailySummary)
		meals.GET("/weekly", h.WeeklyInsights)
	}
}

// LogMeal persists a meal. When the request carries a draft ID the
// cached analysis fills in the fields the client didn't send.
func (h *MealHandler) LogMeal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	meal := models.MealLog{
		Name:           req.Name,
		Calories:       req.Calories,
		Protein:        req.Protein,
		Carbs:          req.Carbs,
		Fat:            req.Fat,
		IsPackaged:     req.IsPackaged,
		Description:    req.Description,
		Ingredients:    req.Ingredients,
		Allergens:      req.Allergens,
		HealthInsights: req.HealthInsights,
	}

	if req.ConsumedAt != "" {
		at, err := time.Parse(time.RFC3339, req.ConsumedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "consumed_at must be RFC3339"})
			return
		}
		meal.ConsumedAt = at
	}

	if req.DraftID != "" && h.draftService != nil {
		h.applyDraft(c, req.DraftID, &meal)
	}

	if err := h.mealService.LogMeal(c.Request.Context(), userID, &meal); err != nil {
		if errors.Is(err, service.ErrInvalidMealData) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log meal"})
		return
	}

	if req.DraftID != "" && h.draftService != nil {
		if err := h.draftService.DeleteDraft(c.Request.Context(), req.DraftID); err != nil {
			log.Printf("[MealHandler] failed to delete draft %s: %v", req.DraftID, err)
		}
	}

	score, warnings := h.scoreMeal(c, userID, &meal)
	c.JSON(http.StatusCreated, gin.H{
		"meal":              meal,
		"health_score":      score,
		"allergen_warnings": warnings,
	})
}

// scoreMeal grades the logged meal against the profile and flags any
// allergy matches. Scoring never blocks the log; an unreadable profile
// just yields an unpersonalized score.
func (h *MealHandler) scoreMeal(c *gin.Context, userID uuid.UUID, meal *models.MealLog) (nutrition.HealthScore, []string) {
	engineMeal := nutrition.Meal{
		Name:        meal.Name,
		Calories:    meal.Calories,
		Protein:     meal.Protein,
		Carbs:       meal.Carbs,
		Fat:         meal.Fat,
		IsPackaged:  meal.IsPackaged,
		Description: meal.Description,
		Ingredients: meal.Ingredients,
		Allergens:   meal.Allergens,
	}

	var profile nutrition.Profile
	if stored, err := h.profileService.GetProfile(c.Request.Context(), userID); err == nil {
		profile = service.EngineProfile(stored)
	}

	var allergies []string
	if stored, err := h.profileService.GetAllergies(c.Request.Context(), userID); err == nil {
		allergies = stored
	}

	matched := nutrition.AllergenMatches(engineMeal, allergies)
	return nutrition.ComputeHealthScore(engineMeal, profile, matched), matched
}

// applyDraft backfills analysis-derived fields from the cached draft.
// The client's own values win; a missing draft is not an error since
// drafts expire.
func (h *MealHandler) applyDraft(c *gin.Context, draftID string, meal *models.MealLog) {
	draft, err := h.draftService.GetDraft(c.Request.Context(), draftID)
	if err != nil || draft.MealData == nil {
		log.Printf("[MealHandler] draft %s unavailable: %v", draftID, err)
		return
	}

	data := draft.MealData
	if meal.Description == "" {
		meal.Description = data.FoodDescription
	}
	if len(meal.Ingredients) == 0 {
		meal.Ingredients = data.Ingredients
	}
	if len(meal.Allergens) == 0 {
		meal.Allergens = data.Allergens
	}
	if meal.HealthInsights == "" {
		meal.HealthInsights = data.HealthInsights
	}
	meal.IsPackaged = meal.IsPackaged || data.IsPackaged
}

// ListMeals returns the day's meals, newest first. Defaults to today.
func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	day, ok := queryDate(c)
	if !ok {
		return
	}

	meals, err := h.mealService.MealsForDay(c.Request.Context(), userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list meals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meals": meals})
}

// DailySummary returns the aggregate totals for one day.
func (h *MealHandler) DailySummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	day, ok := queryDate(c)
	if !ok {
		return
	}

	summary, err := h.mealService.DailySummary(c.Request.Context(), userID, day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get daily summary"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// WeeklyInsights returns the seven-day view judged against the
// profile's calorie and protein targets.
func (h *MealHandler) WeeklyInsights(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var calorieTarget, proteinTarget int
	if profile, err := h.profileService.GetProfile(c.Request.Context(), userID); err == nil {
		targets := nutrition.Targets(service.EngineProfile(profile))
		calorieTarget = targets.Calories
		proteinTarget = targets.Protein
	}

	insights, err := h.mealService.Weekly(c.Request.Context(), userID, calorieTarget, proteinTarget)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get weekly insights"})
		return
	}

	c.JSON(http.StatusOK, insights)
}

// queryDate parses the optional ?date=YYYY-MM-DD parameter, defaulting
// to today. Writes the 400 itself on a malformed value.
func queryDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}
	day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}
