package services

import (
	"testing"
	"time"

	"masshouse/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, claims AdminClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestValidateAdminToken(t *testing.T) {
	service, err := NewAuthService(config.Config{AdminJWTSecret: "test-secret"})
	require.NoError(t, err)

	adminClaims := AdminClaims{
		Email:   "admin@example.com",
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	t.Run("valid admin token", func(t *testing.T) {
		claims, err := service.ValidateAdminToken(signTestToken(t, "test-secret", adminClaims))
		require.NoError(t, err)
		assert.True(t, claims.IsAdmin)
		assert.Equal(t, "admin@example.com", claims.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, err := service.ValidateAdminToken(signTestToken(t, "other-secret", adminClaims))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		expired := adminClaims
		expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		_, err := service.ValidateAdminToken(signTestToken(t, "test-secret", expired))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := service.ValidateAdminToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("non-admin token passes validation but carries no capability", func(t *testing.T) {
		resident := adminClaims
		resident.IsAdmin = false
		claims, err := service.ValidateAdminToken(signTestToken(t, "test-secret", resident))
		require.NoError(t, err)
		assert.False(t, claims.IsAdmin)
	})
}

func TestNewAuthServiceRequiresSecret(t *testing.T) {
	_, err := NewAuthService(config.Config{})
	assert.Error(t, err)
}
