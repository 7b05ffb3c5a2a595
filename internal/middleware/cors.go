package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS permits requests from any origin. The analyze and search
// endpoints are called directly from the browser client, so the policy
// mirrors the open edge-function contract: all origins, the client's
// auth headers, and a cached preflight.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		MaxAge:          24 * time.Hour,
	})
}
