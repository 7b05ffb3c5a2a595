package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nutrisnap/nutrisnap/backend/internal/models"
	"github.com/nutrisnap/nutrisnap/backend/internal/nutrition"
	"github.com/nutrisnap/nutrisnap/backend/internal/types"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile retrieves a user's profile
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies the provided fields and keeps the calorie target
// in step: when the caller didn't override it, the target is re-derived
// from the updated profile so dashboards never show a stale figure.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}

	if req.Age != nil {
		profile.Age = *req.Age
	}
	if req.Weight != nil {
		profile.Weight = *req.Weight
	}
	if req.Height != nil {
		profile.Height = *req.Height
	}
	if req.Gender != nil {
		profile.Gender = nutrition.ParseGender(*req.Gender).String()
	}
	if req.Goal != nil {
		profile.Goal = nutrition.ParseGoal(*req.Goal).String()
	}
	if req.DietaryPreference != nil {
		profile.DietaryPreference = nutrition.ParseDietaryPreference(*req.DietaryPreference).String()
	}

	if req.DailyCalorieTarget != nil && *req.DailyCalorieTarget > 0 {
		profile.DailyCalorieTarget = *req.DailyCalorieTarget
	} else {
		p := EngineProfile(&profile)
		p.DailyCalorieTarget = 0
		profile.DailyCalorieTarget = nutrition.Targets(p).Calories
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		if req.Allergies == nil {
			return nil
		}
		// Allergies are replaced wholesale on every edit.
		if err := tx.Where("user_id = ?", userID).Delete(&models.Allergen{}).Error; err != nil {
			return err
		}
		for _, name := range req.Allergies {
			if name == "" {
				continue
			}
			a := models.Allergen{UserID: userID, AllergenName: name}
			if err := tx.Create(&a).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// GetAllergies returns the profile's allergy tags.
func (s *ProfileService) GetAllergies(ctx context.Context, userID uuid.UUID) ([]string, error) {
	var records []models.Allergen
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.AllergenName)
	}
	return names, nil
}

// EngineProfile converts a stored profile into the engine's value type.
func EngineProfile(p *models.UserProfile) nutrition.Profile {
	return nutrition.Profile{
		Age:                p.Age,
		Weight:             p.Weight,
		Height:             p.Height,
		Gender:             nutrition.ParseGender(p.Gender),
		Goal:               nutrition.ParseGoal(p.Goal),
		DietaryPreference:  nutrition.ParseDietaryPreference(p.DietaryPreference),
		DailyCalorieTarget: p.DailyCalorieTarget,
	}
}

// HealthMetrics is the dashboard bundle of derived figures. Pointer
// fields are nil when the profile lacks the inputs to compute them.
type HealthMetrics struct {
	BMR                 *float64                  `json:"bmr"`
	BMI                 *float64                  `json:"bmi"`
	BMICategory         string                    `json:"bmi_category,omitempty"`
	MaintenanceCalories *int                      `json:"maintenance_calories"`
	GoalCalories        *int                      `json:"goal_calories"`
	Targets             nutrition.NutrientTargets `json:"targets"`
	IdealWeightRange    *nutrition.WeightRange    `json:"ideal_weight_range"`
	WeightStatus        string                    `json:"weight_status"`
	Recommendation      *nutrition.Recommendation `json:"recommendation"`
}

// Metrics computes the full dashboard metric set for a profile and the
// calories consumed so far today. Incomplete profiles simply produce
// nil sections; nothing here fails.
func (s *ProfileService) Metrics(ctx context.Context, userID uuid.UUID, consumedToday int) (*HealthMetrics, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	p := EngineProfile(profile)
	m := &HealthMetrics{Targets: nutrition.Targets(p)}

	if bmr, ok := nutrition.BMR(p.Weight, p.Height, p.Age, p.Gender); ok {
		m.BMR = &bmr
		maintenance := nutrition.MaintenanceCalories(bmr)
		m.MaintenanceCalories = &maintenance
		goal := nutrition.GoalCalories(maintenance, p.Goal)
		m.GoalCalories = &goal
	}
	if bmi, ok := nutrition.BMI(p.Weight, p.Height); ok {
		m.BMI = &bmi
		m.BMICategory = nutrition.BMICategory(bmi)
	}

	m.IdealWeightRange = nutrition.IdealWeightRange(p.Height, p.Age)
	m.WeightStatus = nutrition.ClassifyWeight(p.Weight, m.IdealWeightRange).String()
	m.Recommendation = nutrition.GenerateRecommendation(p, consumedToday)

	return m, nil
}
