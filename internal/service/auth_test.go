package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nutrisnap/nutrisnap/backend/internal/models"
)

const testJWTSecret = "test-secret"

func TestRegister(t *testing.T) {
	t.Run("creates user with empty profile", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewAuthService(db, testJWTSecret)

		token, err := svc.Register("Test User", "test@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)

		var user models.User
		require.NoError(t, db.Where("email = ?", "test@example.com").First(&user).Error)
		assert.Equal(t, "Test User", user.Name)
		assert.NotEqual(t, "password123", user.PasswordHash)

		var profile models.UserProfile
		require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
		assert.Zero(t, profile.Age)
		assert.Empty(t, profile.Goal)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		svc := NewAuthService(newTestDB(t), testJWTSecret)

		_, err := svc.Register("First", "dup@example.com", "password123")
		require.NoError(t, err)

		_, err = svc.Register("Second", "dup@example.com", "different")
		assert.ErrorIs(t, err, ErrUserExists)
	})
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTSecret)

	_, err := svc.Register("Test User", "login@example.com", "password123")
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		token, err := svc.Login("login@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("login@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login("nobody@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testJWTSecret)

	token, err := svc.Register("Test User", "claims@example.com", "password123")
	require.NoError(t, err)

	t.Run("valid token round-trips claims", func(t *testing.T) {
		claims, err := svc.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, "claims@example.com", claims.Email)
		assert.NotEqual(t, uuid.Nil, claims.UserID)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different secret", func(t *testing.T) {
		other := NewAuthService(db, "other-secret")
		foreign, err := other.Register("Other", "other@example.com", "password123")
		require.NoError(t, err)

		_, err = svc.ValidateToken(foreign)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
