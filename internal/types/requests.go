package types

// RegisterRequest is the request body for account creation.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the request body for signing in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the editable profile fields. Pointers
// distinguish "leave unchanged" from an explicit zero.
type UpdateProfileRequest struct {
	Age                *int     `json:"age"`
	Weight             *float64 `json:"weight"`
	Height             *float64 `json:"height"`
	Gender             *string  `json:"gender"`
	Goal               *string  `json:"goal"`
	DietaryPreference  *string  `json:"dietary_preference"`
	DailyCalorieTarget *int     `json:"daily_calorie_target"`
	Allergies          []string `json:"allergies"`
}

// LogMealRequest is the request body for logging a meal manually or
// confirming an analyzed one.
type LogMealRequest struct {
	Name           string   `json:"name" binding:"required"`
	Calories       float64  `json:"calories" binding:"required"`
	Protein        float64  `json:"protein"`
	Carbs          float64  `json:"carbs"`
	Fat            float64  `json:"fat"`
	ConsumedAt     string   `json:"consumed_at"`
	IsPackaged     bool     `json:"is_packaged"`
	Description    string   `json:"description"`
	Ingredients    []string `json:"ingredients"`
	Allergens      []string `json:"allergens"`
	HealthInsights string   `json:"health_insights"`
	DraftID        string   `json:"draft_id"`
}

// MealSearchRequest is the request body for text nutrition lookup.
type MealSearchRequest struct {
	Query string `json:"query" binding:"required"`
}
