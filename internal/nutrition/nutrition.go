// Package nutrition implements the pure calculation core of the app:
// energy and macro targets derived from a user profile, meal health
// scoring, allergen matching, and the text recommendation generator.
// Nothing in this package performs I/O and nothing returns an error;
// missing inputs degrade to zero values with an ok=false flag so an
// incomplete profile never breaks a caller.
package nutrition

import "strings"

// Gender is a closed enum so goal/gender dispatch is exhaustive.
type Gender int

const (
	GenderUnknown Gender = iota
	Male
	Female
	OtherGender
)

// Goal is the user's stated dietary objective.
type Goal int

const (
	GoalNone Goal = iota
	IncreaseWeight
	LoseWeight
	BuildMuscle
)

// DietaryPreference filters the recommendation pool.
type DietaryPreference int

const (
	NoPreference DietaryPreference = iota
	Vegetarian
	NonVegetarian
	Vegan
)

// String values match what the client sends and what gets persisted.
func (g Gender) String() string {
	switch g {
	case Male:
		return "Male"
	case Female:
		return "Female"
	case OtherGender:
		return "Other"
	}
	return ""
}

func (g Goal) String() string {
	switch g {
	case IncreaseWeight:
		return "Increase Weight"
	case LoseWeight:
		return "Lose Weight"
	case BuildMuscle:
		return "Build Muscle"
	}
	return ""
}

func (d DietaryPreference) String() string {
	switch d {
	case Vegetarian:
		return "Vegetarian"
	case NonVegetarian:
		return "Non-Vegetarian"
	case Vegan:
		return "Vegan"
	}
	return "No Preference"
}

// ParseGender maps a stored or submitted string to a Gender.
// Unrecognized values map to GenderUnknown rather than failing.
func ParseGender(s string) Gender {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "male":
		return Male
	case "female":
		return Female
	case "other":
		return OtherGender
	}
	return GenderUnknown
}

// ParseGoal maps a stored or submitted string to a Goal.
func ParseGoal(s string) Goal {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "increase weight", "gain weight":
		return IncreaseWeight
	case "lose weight":
		return LoseWeight
	case "build muscle":
		return BuildMuscle
	}
	return GoalNone
}

// ParseDietaryPreference maps a stored or submitted string to a preference.
func ParseDietaryPreference(s string) DietaryPreference {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "vegetarian":
		return Vegetarian
	case "non-vegetarian", "nonvegetarian":
		return NonVegetarian
	case "vegan":
		return Vegan
	}
	return NoPreference
}

// Profile is the slice of a user profile the engine computes from.
// Zero values mean "not provided".
type Profile struct {
	Age                int
	Weight             float64 // kg
	Height             float64 // cm
	Gender             Gender
	Goal               Goal
	DietaryPreference  DietaryPreference
	DailyCalorieTarget int
}

// Meal carries the fields of a logged or analyzed meal the engine scores.
type Meal struct {
	Name        string
	Calories    float64
	Protein     float64 // g
	Carbs       float64 // g
	Fat         float64 // g
	IsPackaged  bool
	Description string
	Ingredients []string
	Allergens   []string
}

// Loggable reports whether a meal satisfies the valid-meal-data contract:
// a non-empty name, positive calories, and non-negative macros. Callers
// must refuse to persist anything that fails this check.
func (m Meal) Loggable() bool {
	return strings.TrimSpace(m.Name) != "" &&
		m.Calories > 0 &&
		m.Protein >= 0 && m.Carbs >= 0 && m.Fat >= 0
}

// NutrientTargets are the derived daily gram/calorie targets.
type NutrientTargets struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
}

// WeightRange is an ideal body-weight band in kg.
type WeightRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// WeightStatus classifies a weight against an ideal range.
type WeightStatus int

const (
	WeightStatusUnknown WeightStatus = iota
	BelowRange
	WithinRange
	AboveRange
)

func (s WeightStatus) String() string {
	switch s {
	case BelowRange:
		return "below"
	case WithinRange:
		return "within"
	case AboveRange:
		return "above"
	}
	return "unknown"
}

// Recommendation is the composed guidance shown on the dashboard.
type Recommendation struct {
	Text               string `json:"text"`
	Suggestion         string `json:"suggestion"`
	NutritionalBalance string `json:"nutritionalBalance"`
}

// HealthScore grades a single meal against the profile.
type HealthScore struct {
	Score       int    `json:"score"`
	Label       string `json:"label"`
	Description string `json:"description"`
}
