package jwt

import (
	"testing"
	"time"

	"fundihub/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "worker@example.com", "worker")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "worker@example.com", claims.Email)
	assert.Equal(t, "worker", claims.Role)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestRefreshTokenCarriesItsType(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "client@example.com", "client")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := newTestService().GenerateAccessToken(uuid.New(), "client@example.com", "client")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:       "different-secret",
		AccessExpiry: 15 * time.Minute,
	})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: -time.Minute,
	})
	token, _, err := svc.GenerateAccessToken(uuid.New(), "client@example.com", "client")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestEachTokenGetsAFreshID(t *testing.T) {
	svc := newTestService()
	userID := uuid.New()

	_, first, err := svc.GenerateAccessToken(userID, "client@example.com", "client")
	require.NoError(t, err)
	_, second, err := svc.GenerateAccessToken(userID, "client@example.com", "client")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
