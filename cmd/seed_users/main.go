package main

import (
	"context"
	"log"
	"time"

	"github.com/nutrisnap/nutrisnap/backend/config"
	"github.com/nutrisnap/nutrisnap/backend/internal/database"
	"github.com/nutrisnap/nutrisnap/backend/internal/models"
	"github.com/nutrisnap/nutrisnap/backend/internal/service"
	"github.com/nutrisnap/nutrisnap/backend/internal/types"
)

// Seeds demo accounts with filled-in profiles and a day of meals so a
// fresh environment has something on the dashboard.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	mealService := service.NewMealService(db)

	ctx := context.Background()

	demoUsers := []struct {
		name    string
		email   string
		profile types.UpdateProfileRequest
	}{
		{
			name:  "John Doe",
			email: "john.doe@example.com",
			profile: types.UpdateProfileRequest{
				Age:    intPtr(32),
				Weight: floatPtr(82),
				Height: floatPtr(180),
				Gender: strPtr("male"),
				Goal:   strPtr("build muscle"),
			},
		},
		{
			name:  "Jane Smith",
			email: "jane.smith@example.com",
			profile: types.UpdateProfileRequest{
				Age:               intPtr(28),
				Weight:            floatPtr(65),
				Height:            floatPtr(165),
				Gender:            strPtr("female"),
				Goal:              strPtr("lose weight"),
				DietaryPreference: strPtr("vegetarian"),
				Allergies:         []string{"peanuts"},
			},
		},
	}

	sampleMeals := []models.MealLog{
		{Name: "Oatmeal with berries", Calories: 320, Protein: 10, Carbs: 55, Fat: 7},
		{Name: "Grilled chicken salad", Calories: 450, Protein: 38, Carbs: 18, Fat: 24},
		{Name: "Greek yogurt", Calories: 150, Protein: 15, Carbs: 12, Fat: 4},
	}

	for _, u := range demoUsers {
		if _, err := authService.Register(u.name, u.email, "testpassword123"); err != nil {
			log.Printf("Skipping %s: %v", u.email, err)
			continue
		}

		claims, err := authService.ValidateToken(mustLogin(authService, u.email))
		if err != nil {
			log.Fatalf("Failed to resolve user ID for %s: %v", u.email, err)
		}

		if _, err := profileService.UpdateProfile(ctx, claims.UserID, &u.profile); err != nil {
			log.Fatalf("Failed to seed profile for %s: %v", u.email, err)
		}

		for i, meal := range sampleMeals {
			m := meal
			m.ConsumedAt = time.Now().Add(time.Duration(-4*(len(sampleMeals)-i)) * time.Hour)
			if err := mealService.LogMeal(ctx, claims.UserID, &m); err != nil {
				log.Fatalf("Failed to seed meal for %s: %v", u.email, err)
			}
		}

		log.Printf("Seeded %s", u.email)
	}
}

func mustLogin(auth *service.AuthService, email string) string {
	token, err := auth.Login(email, "testpassword123")
	if err != nil {
		log.Fatalf("Failed to log in %s: %v", email, err)
	}
	return token
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
