package nutrition

import "math"

// The multipliers and percentage splits below are intentionally fixed.
// The profile has no activity-level field, so maintenance assumes
// moderate activity; changing these constants changes every derived
// target, so they live here as the single source of truth.
const (
	activityMultiplier = 1.55

	fatCaloriePercent = 0.25

	caloriesPerGramProtein = 4.0
	caloriesPerGramCarbs   = 4.0
	caloriesPerGramFat     = 9.0
)

// BMR computes the Mifflin-St Jeor basal metabolic rate. ok is false
// when any input is missing or non-positive.
func BMR(weight, height float64, age int, gender Gender) (float64, bool) {
	if weight <= 0 || height <= 0 || age <= 0 || gender == GenderUnknown {
		return 0, false
	}
	bmr := 10*weight + 6.25*height - 5*float64(age)
	if gender == Male {
		bmr += 5
	} else {
		bmr -= 161
	}
	return bmr, true
}

// MaintenanceCalories scales a BMR by the fixed moderate-activity multiplier.
func MaintenanceCalories(bmr float64) int {
	return int(math.Round(bmr * activityMultiplier))
}

// GoalCalories adjusts maintenance calories for the user's goal.
func GoalCalories(maintenance int, goal Goal) int {
	switch goal {
	case IncreaseWeight:
		return maintenance + 500
	case LoseWeight:
		return maintenance - 500
	case BuildMuscle:
		return maintenance + 300
	}
	return maintenance
}

// DefaultCalorieTarget is the target used before the profile is complete
// enough to derive one, keyed only off the goal.
func DefaultCalorieTarget(goal Goal) int {
	switch goal {
	case IncreaseWeight:
		return 2500
	case LoseWeight:
		return 1800
	case BuildMuscle:
		return 2200
	}
	return 2000
}

// BMI computes body mass index from weight in kg and height in cm,
// rounded to one decimal. ok is false when either input is missing.
func BMI(weight, height float64) (float64, bool) {
	if weight <= 0 || height <= 0 {
		return 0, false
	}
	m := height / 100
	return math.Round(weight/(m*m)*10) / 10, true
}

// BMICategory labels a BMI value using the standard bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	}
	return "Obese"
}

// IdealWeightRange derives a healthy weight band from height via BMI
// bands. The band widens for seniors and narrows for minors. Returns
// nil when height or age is missing.
func IdealWeightRange(height float64, age int) *WeightRange {
	if height <= 0 || age <= 0 {
		return nil
	}
	minBMI, maxBMI := 18.5, 24.9
	switch {
	case age > 65:
		minBMI, maxBMI = 22, 27
	case age < 18:
		minBMI, maxBMI = 17, 23
	}
	m := height / 100
	return &WeightRange{
		Min: int(math.Round(minBMI * m * m)),
		Max: int(math.Round(maxBMI * m * m)),
	}
}

// ClassifyWeight places a weight relative to an ideal range.
func ClassifyWeight(weight float64, r *WeightRange) WeightStatus {
	if weight <= 0 || r == nil {
		return WeightStatusUnknown
	}
	switch {
	case weight < float64(r.Min):
		return BelowRange
	case weight > float64(r.Max):
		return AboveRange
	}
	return WithinRange
}

// proteinPerKg is the goal-dependent protein coefficient in g/kg bodyweight.
func proteinPerKg(goal Goal) float64 {
	switch goal {
	case LoseWeight:
		return 2.0
	case BuildMuscle:
		return 2.2
	case IncreaseWeight:
		return 1.8
	}
	return 1.6
}

// carbPercent is the share of daily calories allotted to carbohydrates.
func carbPercent(goal Goal) float64 {
	switch goal {
	case LoseWeight:
		return 0.35
	case IncreaseWeight:
		return 0.55
	}
	return 0.45
}

// Targets computes the daily nutrient targets for a profile. The calorie
// figure is the profile's explicit target when set, otherwise the
// goal-adjusted maintenance when the profile supports a BMR, otherwise
// the goal default, so it always agrees with GoalCalories.
func Targets(p Profile) NutrientTargets {
	calories := p.DailyCalorieTarget
	if calories <= 0 {
		if bmr, ok := BMR(p.Weight, p.Height, p.Age, p.Gender); ok {
			calories = GoalCalories(MaintenanceCalories(bmr), p.Goal)
		} else {
			calories = DefaultCalorieTarget(p.Goal)
		}
	}

	var protein float64
	if p.Weight > 0 {
		protein = proteinPerKg(p.Goal) * p.Weight
	} else {
		protein = float64(calories) * 0.30 / caloriesPerGramProtein
	}

	carbs := float64(calories) * carbPercent(p.Goal) / caloriesPerGramCarbs
	fat := float64(calories) * fatCaloriePercent / caloriesPerGramFat

	return NutrientTargets{
		Calories: calories,
		Protein:  int(math.Round(protein)),
		Carbs:    int(math.Round(carbs)),
		Fat:      int(math.Round(fat)),
	}
}
