package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() JWTService {
	return NewJWTService(JWTConfig{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "staff@clinic.test", true)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "staff@clinic.test", claims.Email)
	assert.True(t, claims.IsStaff)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestSecretsAreSeparate(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	access, err := svc.GenerateAccessToken(userID, "pat@example.test", false)
	require.NoError(t, err)
	refresh, err := svc.GenerateRefreshToken(userID, "pat@example.test", false)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	svc := newTestJWTService()
	other := NewJWTService(JWTConfig{
		Secret:        "some-other-secret",
		RefreshSecret: "another-refresh-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})

	token, err := other.GenerateAccessToken(uuid.New(), "pat@example.test", false)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		Secret:        "access-secret",
		RefreshSecret: "refresh-secret",
		Expiry:        -time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})

	token, err := svc.GenerateAccessToken(uuid.New(), "pat@example.test", false)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := newTestJWTService()

	_, err := svc.ValidateAccessToken("definitely.not.a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
