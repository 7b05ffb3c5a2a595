package nutrition

import "strings"

// AllergenMatches returns the profile allergy terms that appear,
// case-insensitively, anywhere in the meal's allergen list, ingredient
// list, name, or description. Empty allergies always yield an empty set.
func AllergenMatches(meal Meal, profileAllergies []string) []string {
	if len(profileAllergies) == 0 {
		return nil
	}

	haystacks := make([]string, 0, len(meal.Allergens)+len(meal.Ingredients)+2)
	haystacks = append(haystacks, strings.ToLower(meal.Name), strings.ToLower(meal.Description))
	for _, a := range meal.Allergens {
		haystacks = append(haystacks, strings.ToLower(a))
	}
	for _, ing := range meal.Ingredients {
		haystacks = append(haystacks, strings.ToLower(ing))
	}

	seen := make(map[string]bool)
	var matched []string
	for _, term := range profileAllergies {
		needle := strings.ToLower(strings.TrimSpace(term))
		if needle == "" || seen[needle] {
			continue
		}
		for _, hay := range haystacks {
			if strings.Contains(hay, needle) {
				seen[needle] = true
				matched = append(matched, needle)
				break
			}
		}
	}
	return matched
}

// Score band labels and their fixed descriptions.
const (
	labelHealthy  = "Healthy Choice"
	labelModerate = "Moderate Choice"
	labelCautious = "Cautious Choice"

	descHealthy  = "This meal fits well with your nutrition profile."
	descModerate = "This meal is okay, but watch the portions and balance."
	descCautious = "This meal works against your goals. Consider an alternative."
)

// ComputeHealthScore grades a meal 0-100 for a profile. Scoring starts
// at a base of 70, rewards a balanced macro split, and penalizes
// goal-hostile calories, low protein for muscle builders, packaged food,
// and matched allergens. The result is always clamped to [0, 100].
func ComputeHealthScore(meal Meal, p Profile, matchedAllergens []string) HealthScore {
	score := 70

	totalGrams := meal.Protein + meal.Carbs + meal.Fat
	if totalGrams > 0 {
		proteinShare := meal.Protein / totalGrams
		carbShare := meal.Carbs / totalGrams
		fatShare := meal.Fat / totalGrams
		if proteinShare >= 0.2 && proteinShare <= 0.4 {
			score += 10
		}
		if carbShare >= 0.3 && carbShare <= 0.5 {
			score += 10
		}
		if fatShare >= 0.2 && fatShare <= 0.4 {
			score += 10
		}
	}

	if meal.Calories > 600 {
		switch p.Goal {
		case LoseWeight:
			score -= 15
		case IncreaseWeight, BuildMuscle:
			score += 10
		}
	}

	if p.Goal == BuildMuscle && meal.Protein < 20 {
		score -= 10
	}
	if meal.IsPackaged {
		score -= 10
	}
	if len(matchedAllergens) > 0 {
		score -= 25
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	label, desc := labelCautious, descCautious
	switch {
	case score >= 70:
		label, desc = labelHealthy, descHealthy
	case score >= 40:
		label, desc = labelModerate, descModerate
	}

	return HealthScore{Score: score, Label: label, Description: desc}
}
