package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment represents the current runtime environment
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment determines the current environment. CI is detected
// automatically; everything else comes from ENV.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	}
	return Development
}

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Vision model API (meal photo analysis)
	VisionAPIKey string
	VisionAPIURL string
	VisionModel  string

	// Nutrition database API (text meal search)
	NutritionAPIKey string
	NutritionAPIURL string

	// Object storage
	S3Bucket  string
	AWSRegion string
}

// LoadConfig builds a Config from environment variables, falling back to
// Docker secrets for credential fields. In development a .env file is
// loaded first when present.
func LoadConfig() (*Config, error) {
	if GetEnvironment() == Development {
		// Missing .env is fine; real env vars still apply.
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerPort: envDefault("SERVER_PORT", "8080"),
		ServerHost: envDefault("SERVER_HOST", "0.0.0.0"),

		DBHost:     envDefault("DB_HOST", "localhost"),
		DBPort:     envDefault("DB_PORT", "5432"),
		DBUser:     envOrSecret("DB_USER", "db_user"),
		DBPassword: envOrSecret("DB_PASSWORD", "db_password"),
		DBName:     envDefault("DB_NAME", "nutrisnap"),
		DBSSLMode:  envDefault("DB_SSL_MODE", "disable"),

		RedisHost:     envDefault("REDIS_HOST", "localhost"),
		RedisPort:     envDefault("REDIS_PORT", "6379"),
		RedisPassword: envOrSecret("REDIS_PASSWORD", "redis_password"),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: envOrSecret("JWT_SECRET", "jwt_secret"),

		VisionAPIKey: envOrSecret("XAI_API_KEY", "xai_api_key"),
		VisionAPIURL: envDefault("XAI_API_URL", "https://api.x.ai/v1/chat/completions"),
		VisionModel:  envDefault("XAI_VISION_MODEL", "grok-2-vision-latest"),

		NutritionAPIKey: envOrSecret("CALORIE_NINJAS_API_KEY", "calorie_ninjas_api_key"),
		NutritionAPIURL: envDefault("CALORIE_NINJAS_API_URL", "https://api.calorieninjas.com/v1/nutrition"),

		S3Bucket:  envDefault("S3_BUCKET_NAME", "nutrisnap-meal-photos"),
		AWSRegion: os.Getenv("AWS_REGION"),
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", db, err)
		}
		cfg.RedisDB = n
	}

	if cfg.JWTSecret == "" && GetEnvironment() == Production {
		return nil, fmt.Errorf("JWT_SECRET is required in production")
	}

	return cfg, nil
}

// envDefault returns the environment value or a default when unset.
func envDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envOrSecret prefers the environment variable, then a Docker secret
// file of the given name, then a <KEY>_FILE pointer.
func envOrSecret(key, secretName string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return readSecret(secretName)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}
