package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("SECRETS_DIR", t.TempDir()) // empty dir, no secrets

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "https://api.x.ai/v1/chat/completions", cfg.VisionAPIURL)
	assert.Equal(t, "grok-2-vision-latest", cfg.VisionModel)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestLoadConfigSecretFallbacks(t *testing.T) {
	secretsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "jwt_secret"), []byte("from-secret\n"), 0600))

	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)

	t.Run("env var wins over secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "from-env")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.JWTSecret)
	})

	t.Run("key file pointer", func(t *testing.T) {
		keyFile := filepath.Join(t.TempDir(), "xai_key")
		require.NoError(t, os.WriteFile(keyFile, []byte("xai-test-key\n"), 0600))
		t.Setenv("XAI_API_KEY", "")
		t.Setenv("XAI_API_KEY_FILE", keyFile)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "xai-test-key", cfg.VisionAPIKey)
	})
}

func TestLoadConfigInvalidRedisDB(t *testing.T) {
	t.Setenv("ENV", "test")
	t.Setenv("CI", "")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := LoadConfig()
	assert.Error(t, err)
}
