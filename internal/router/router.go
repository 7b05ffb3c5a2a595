package router

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/nutrisnap/nutrisnap/backend/config"
	"github.com/nutrisnap/nutrisnap/backend/internal/api"
	"github.com/nutrisnap/nutrisnap/backend/internal/middleware"
)

// SetupRouter builds the gin engine with CORS and all API routes.
func SetupRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())

	api.RegisterRoutes(router, db, redisClient, cfg)

	return router
}
