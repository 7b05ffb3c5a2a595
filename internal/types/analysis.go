package types

import "github.com/nutrisnap/nutrisnap/backend/internal/nutrition"

// NutritionFacts is the nutrition block the vision model must return.
type NutritionFacts struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// MealData is the validated payload extracted from the vision model's
// reply. Field names follow the wire contract the prompt demands.
// Nutrition is a pointer so a missing block is distinguishable from a
// legitimately zero-calorie one.
type MealData struct {
	FoodName        string          `json:"food_name"`
	IsPackaged      bool            `json:"is_packaged"`
	FoodDescription string          `json:"food_description"`
	Ingredients     []string        `json:"ingredients"`
	Allergens       []string        `json:"allergens"`
	HealthInsights  string          `json:"health_insights"`
	Nutrition       *NutritionFacts `json:"nutrition"`
}

// AnalyzeProfileContext is the optional per-request profile slice that
// turns an analysis into a personalized recommendation.
type AnalyzeProfileContext struct {
	Goal                  string `json:"goal"`
	Gender                string `json:"gender"`
	DailyCalorieTarget    int    `json:"dailyCalorieTarget"`
	TotalCaloriesConsumed int    `json:"totalCaloriesConsumed"`
}

// AnalyzeMealRequest is the request body of the analyze endpoint.
type AnalyzeMealRequest struct {
	ImageURL    string                 `json:"imageUrl" binding:"required"`
	UserProfile *AnalyzeProfileContext `json:"userProfile"`
}

// AnalysisResult is the pipeline's success payload.
type AnalysisResult struct {
	MealData       *MealData                 `json:"mealData"`
	Recommendation *nutrition.Recommendation `json:"recommendation"`
	DraftID        string                    `json:"draftId,omitempty"`
}

// SearchMealData is the condensed meal shape the text search returns.
type SearchMealData struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}
