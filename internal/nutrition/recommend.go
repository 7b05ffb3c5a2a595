package nutrition

import (
	"fmt"
	"math"
	"math/rand"
)

// suggestionItem is one candidate snack/meal for the recommendation pool.
// The diet flags mark the most restrictive preference the item satisfies.
type suggestionItem struct {
	text       string
	vegetarian bool
	vegan      bool
}

// Pools are keyed by goal, then split by gender where the original
// guidance differed. Items were kept close to the product copy.
var suggestionPools = map[Goal]map[Gender][]suggestionItem{
	IncreaseWeight: {
		Male: {
			{text: "Peanut butter toast with banana and a protein shake", vegetarian: true},
			{text: "Trail mix with dried fruit and dark chocolate", vegetarian: true, vegan: true},
			{text: "Rice bowl with grilled chicken and avocado"},
		},
		Female: {
			{text: "Avocado toast with eggs and a fruit smoothie", vegetarian: true},
			{text: "Granola with full-fat yogurt and honey", vegetarian: true},
			{text: "Hummus with pita and a handful of nuts", vegetarian: true, vegan: true},
		},
	},
	LoseWeight: {
		Male: {
			{text: "Apple with a few almonds", vegetarian: true, vegan: true},
			{text: "Grilled chicken strips with cucumber"},
			{text: "Air-popped popcorn, lightly salted", vegetarian: true, vegan: true},
		},
		Female: {
			{text: "Greek yogurt with berries", vegetarian: true},
			{text: "Carrot sticks with hummus", vegetarian: true, vegan: true},
			{text: "A small bowl of mixed greens with lemon dressing", vegetarian: true, vegan: true},
		},
	},
	BuildMuscle: {
		Male: {
			{text: "Protein shake with oats", vegetarian: true},
			{text: "Tuna on whole-grain crackers"},
			{text: "Edamame with sea salt", vegetarian: true, vegan: true},
		},
		Female: {
			{text: "Cottage cheese with fruits and nuts", vegetarian: true},
			{text: "Boiled eggs with cherry tomatoes", vegetarian: true},
			{text: "Roasted chickpeas", vegetarian: true, vegan: true},
		},
	},
}

// snackCalories is the headline snack size per goal, used in the text line.
func snackCalories(goal Goal) int {
	switch goal {
	case IncreaseWeight:
		return 500
	case LoseWeight:
		return 200
	case BuildMuscle:
		return 300
	}
	return 250
}

// balanceGuidance is the goal-specific closing sentence.
func balanceGuidance(goal Goal) string {
	switch goal {
	case IncreaseWeight:
		return "Keep up the balanced intake of proteins, healthy fats, and carbs."
	case LoseWeight:
		return "Keep focusing on nutrient-dense foods with lean protein and vegetables."
	case BuildMuscle:
		return "Continue with balanced meals including complex carbs for energy."
	}
	return "Maintain a balanced diet with plenty of vegetables, lean proteins, and whole grains."
}

// matchesPreference reports whether an item survives the diet filter.
func (it suggestionItem) matchesPreference(pref DietaryPreference) bool {
	switch pref {
	case Vegan:
		return it.vegan
	case Vegetarian:
		return it.vegetarian
	}
	return true
}

// candidatePool assembles the filtered pool for a profile. When the
// gender-specific pool filters down to nothing (a vegan profile against
// a meat-heavy pool, say), the other gender buckets backfill it.
func candidatePool(p Profile) []suggestionItem {
	byGender, ok := suggestionPools[p.Goal]
	if !ok {
		return nil
	}

	gender := p.Gender
	if gender != Male && gender != Female {
		gender = Female
	}

	var pool []suggestionItem
	for _, it := range byGender[gender] {
		if it.matchesPreference(p.DietaryPreference) {
			pool = append(pool, it)
		}
	}
	if len(pool) == 0 {
		for g, items := range byGender {
			if g == gender {
				continue
			}
			for _, it := range items {
				if it.matchesPreference(p.DietaryPreference) {
					pool = append(pool, it)
				}
			}
		}
	}
	return pool
}

// GenerateRecommendation composes dashboard guidance from the profile and
// today's consumed calories. Each call draws a fresh uniform-random pick
// from the filtered pool, so "get a new suggestion" actually changes.
// Returns nil when the profile has no goal.
func GenerateRecommendation(p Profile, consumedCalories int) *Recommendation {
	if p.Goal == GoalNone {
		return nil
	}

	target := p.DailyCalorieTarget
	if target <= 0 {
		target = DefaultCalorieTarget(p.Goal)
	}

	pool := candidatePool(p)
	suggestion := "Maintain a balanced diet with plenty of vegetables, lean proteins, and whole grains."
	if len(pool) > 0 {
		suggestion = pool[rand.Intn(len(pool))].text
	}

	return &Recommendation{
		Text: fmt.Sprintf("You've had %d kcal today. For your %d kcal goal, try a %d kcal snack:",
			consumedCalories, target, snackCalories(p.Goal)),
		Suggestion:         suggestion,
		NutritionalBalance: balanceGuidance(p.Goal),
	}
}

// MealSuggestion produces the goal-conditioned advice attached to an
// analyzed meal. remainingCalories is target minus consumed minus this
// meal; the macro arguments are the meal's own grams.
func MealSuggestion(goal Goal, remainingCalories int, carbs, protein, fat float64) string {
	switch goal {
	case LoseWeight:
		if remainingCalories < 300 {
			return "You're close to your calorie limit. Consider a light snack like Greek yogurt or vegetables for the rest of the day."
		}
		if carbs > 60 {
			return "This meal is high in carbs. For your next meal, focus on lean proteins and vegetables to balance your daily intake."
		}
		return "Good job balancing your meal. Keep focusing on nutrient-dense foods with lean protein and vegetables."
	case BuildMuscle:
		if protein < 20 {
			return "This meal is low in protein. Consider adding a protein shake or high-protein snack to help meet your muscle-building goals."
		}
		return "Good protein intake in this meal. Continue with balanced meals including complex carbs for energy."
	case IncreaseWeight:
		if remainingCalories > 1000 {
			return "You still need more calories today. Consider adding nutrient-dense foods like nuts, avocados, or a protein smoothie with full-fat yogurt."
		}
		return "You're on track with your calorie goals. Keep up the balanced intake of proteins, healthy fats, and carbs."
	}
	return "Maintain a balanced diet with plenty of vegetables, lean proteins, and whole grains."
}

// AssessNutritionalBalance reports the meal's approximate macro split as
// percentages of total macro grams plus a goal-specific caution or
// affirmation. The percentages always sum to 100 within rounding.
func AssessNutritionalBalance(carbs, protein, fat float64, goal Goal) string {
	total := carbs + protein + fat
	if total == 0 {
		return "Unable to assess nutritional balance"
	}

	carbPct := int(math.Round(carbs / total * 100))
	proteinPct := int(math.Round(protein / total * 100))
	fatPct := int(math.Round(fat / total * 100))

	assessment := fmt.Sprintf("Meal composition: ~%d%% carbs, ~%d%% protein, ~%d%% fat. ",
		carbPct, proteinPct, fatPct)

	switch {
	case goal == LoseWeight && carbPct > 50:
		assessment += "For weight loss, consider reducing carbohydrate intake."
	case goal == BuildMuscle && proteinPct < 30:
		assessment += "For muscle building, aim for higher protein intake."
	case goal == IncreaseWeight && fatPct < 25:
		assessment += "For weight gain, healthy fats can help increase calorie intake."
	default:
		assessment += "This balance aligns well with your goals."
	}
	return assessment
}
