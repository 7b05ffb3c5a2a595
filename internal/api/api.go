package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nutrisnap/nutrisnap/backend/config"
	"github.com/nutrisnap/nutrisnap/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "NutriSnap API is running",
		"version": "v1.0.0",
	})
}

// RegisterRoutes wires all services and routes onto the engine. The
// external integrations degrade individually: a missing API key or an
// unreachable Redis disables its feature with a warning instead of
// refusing to boot.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)
	mealService := service.NewMealService(db)

	var draftService *service.DraftService
	if redisClient != nil {
		draftService = service.NewDraftService(redisClient)
	} else {
		log.Printf("Warning: Redis unavailable, analysis drafts disabled")
	}

	visionService, err := service.NewVisionService(cfg)
	if err != nil {
		log.Printf("Warning: meal photo analysis disabled: %v", err)
	}

	searchService, err := service.NewNutritionSearchService(cfg)
	if err != nil {
		log.Printf("Warning: text nutrition search disabled: %v", err)
	}

	var imageService *service.ImageService
	if s3Config, err := config.NewS3Config(context.Background(), cfg); err != nil {
		log.Printf("Warning: photo upload disabled: %v", err)
	} else {
		imageService = service.NewImageService(s3Config)
	}

	v1 := router.Group("/api/v1")
	{
		NewAuthHandler(authService).RegisterRoutes(v1)
		NewProfileHandler(profileService, authService).RegisterRoutes(v1)
		NewMealHandler(mealService, profileService, draftService, authService).RegisterRoutes(v1)
		NewDashboardHandler(profileService, mealService, authService).RegisterRoutes(v1)
		NewAnalyzeHandler(visionService, searchService, draftService).RegisterRoutes(v1)
		if imageService != nil {
			NewImageHandler(imageService, authService).RegisterRoutes(v1)
		}
	}
}
