package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/piresc/dispatch/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestConfig() models.JWTConfig {
	return models.JWTConfig{
		Secret:     "test-secret-key-for-jwt-signing",
		Expiration: 60,
		Issuer:     "dispatch-test",
	}
}

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name   string
		userID string
		role   models.Role
	}{
		{name: "driver", userID: "driver-1", role: models.RoleDriver},
		{name: "rider", userID: "rider-1", role: models.RoleRider},
		{name: "admin", userID: "ops", role: models.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := getTestConfig()

			token, expiresAt, err := GenerateToken(tt.userID, tt.role, cfg)

			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

			claims, err := ValidateToken(token, cfg.Secret)
			require.NoError(t, err)
			assert.Equal(t, models.Actor{UserID: tt.userID, Role: tt.role}, claims.Actor())
			assert.Equal(t, cfg.Issuer, claims.Issuer)
		})
	}
}

func TestValidateToken_Failures(t *testing.T) {
	cfg := getTestConfig()
	valid, _, err := GenerateToken("rider-1", models.RoleRider, cfg)
	require.NoError(t, err)

	expired := &Claims{
		UserID: "rider-1",
		Role:   models.RoleRider,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expiredToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	badRole := &Claims{UserID: "x", Role: "passenger"}
	badRoleToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, badRole).SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "x", Role: models.RoleAdmin}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "wrong secret", token: valid, secret: "other"},
		{name: "expired", token: expiredToken, secret: cfg.Secret},
		{name: "unknown role", token: badRoleToken, secret: cfg.Secret},
		{name: "none algorithm", token: noneToken, secret: cfg.Secret},
		{name: "garbage", token: "not.a.token", secret: cfg.Secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)

			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestFromHeader(t *testing.T) {
	cfg := getTestConfig()
	token, _, err := GenerateToken("driver-1", models.RoleDriver, cfg)
	require.NoError(t, err)

	claims, err := FromHeader("Bearer "+token, cfg.Secret)
	require.NoError(t, err)
	assert.Equal(t, "driver-1", claims.UserID)

	_, err = FromHeader("", cfg.Secret)
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = FromHeader("Token "+token, cfg.Secret)
	assert.ErrorIs(t, err, ErrBadFormat)
}
