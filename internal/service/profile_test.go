package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nutrisnap/nutrisnap/backend/internal/models"
	"github.com/nutrisnap/nutrisnap/backend/internal/types"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func seedProfile(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	userID := uuid.New()
	require.NoError(t, db.Create(&models.UserProfile{UserID: userID}).Error)
	return userID
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("derives calorie target from updated fields", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProfileService(db)
		userID := seedProfile(t, db)

		profile, err := svc.UpdateProfile(ctx, userID, &types.UpdateProfileRequest{
			Age:    intPtr(25),
			Weight: floatPtr(70),
			Height: floatPtr(175),
			Gender: strPtr("male"),
			Goal:   strPtr("lose weight"),
		})
		require.NoError(t, err)

		// maintenance 2594 minus the weight-loss deficit
		assert.Equal(t, 2094, profile.DailyCalorieTarget)
		assert.Equal(t, "Male", profile.Gender)
		assert.Equal(t, "Lose Weight", profile.Goal)
	})

	t.Run("explicit target wins over derivation", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProfileService(db)
		userID := seedProfile(t, db)

		profile, err := svc.UpdateProfile(ctx, userID, &types.UpdateProfileRequest{
			Age:                intPtr(30),
			Weight:             floatPtr(70),
			Height:             floatPtr(175),
			Gender:             strPtr("male"),
			DailyCalorieTarget: intPtr(1900),
		})
		require.NoError(t, err)
		assert.Equal(t, 1900, profile.DailyCalorieTarget)
	})

	t.Run("allergies are replaced wholesale", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProfileService(db)
		userID := seedProfile(t, db)

		_, err := svc.UpdateProfile(ctx, userID, &types.UpdateProfileRequest{
			Allergies: []string{"peanuts", "shellfish"},
		})
		require.NoError(t, err)

		_, err = svc.UpdateProfile(ctx, userID, &types.UpdateProfileRequest{
			Allergies: []string{"gluten"},
		})
		require.NoError(t, err)

		allergies, err := svc.GetAllergies(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []string{"gluten"}, allergies)
	})

	t.Run("nil allergies leave existing tags alone", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProfileService(db)
		userID := seedProfile(t, db)

		_, err := svc.UpdateProfile(ctx, userID, &types.UpdateProfileRequest{
			Allergies: []string{"dairy"},
		})
		require.NoError(t, err)

		_, err = svc.UpdateProfile(ctx, userID, &types.UpdateProfileRequest{
			Age: intPtr(25),
		})
		require.NoError(t, err)

		allergies, err := svc.GetAllergies(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []string{"dairy"}, allergies)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := NewProfileService(newTestDB(t))
		_, err := svc.UpdateProfile(ctx, uuid.New(), &types.UpdateProfileRequest{Age: intPtr(30)})
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("complete profile computes everything", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProfileService(db)
		userID := uuid.New()
		require.NoError(t, db.Create(&models.UserProfile{
			UserID: userID,
			Age:    25,
			Weight: 70,
			Height: 175,
			Gender: "Male",
			Goal:   "Build Muscle",
		}).Error)

		m, err := svc.Metrics(ctx, userID, 1200)
		require.NoError(t, err)

		require.NotNil(t, m.BMR)
		assert.InDelta(t, 1673.75, *m.BMR, 0.01)
		require.NotNil(t, m.MaintenanceCalories)
		assert.Equal(t, 2594, *m.MaintenanceCalories)
		require.NotNil(t, m.GoalCalories)
		assert.Equal(t, 2894, *m.GoalCalories)
		require.NotNil(t, m.BMI)
		assert.Equal(t, 22.9, *m.BMI)
		assert.Equal(t, "Normal weight", m.BMICategory)
		require.NotNil(t, m.IdealWeightRange)
		assert.Equal(t, "within", m.WeightStatus)
		require.NotNil(t, m.Recommendation)
		assert.Contains(t, m.Recommendation.Text, "1200 kcal")
	})

	t.Run("empty profile degrades to nils", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewProfileService(db)
		userID := seedProfile(t, db)

		m, err := svc.Metrics(ctx, userID, 0)
		require.NoError(t, err)
		assert.Nil(t, m.BMR)
		assert.Nil(t, m.BMI)
		assert.Nil(t, m.IdealWeightRange)
		assert.Nil(t, m.Recommendation)
		assert.Equal(t, "unknown", m.WeightStatus)
		// targets still fall back to the 2000 kcal default
		assert.Equal(t, 2000, m.Targets.Calories)
	})
}
