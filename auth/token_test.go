package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/templario-go/config"
)

func newManager(secret string, duration time.Duration) *TokenManager {
	return NewTokenManager(&config.AuthConfig{JWTSecret: secret, TokenDuration: duration})
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	manager := newManager("test-secret", time.Hour)

	signed, err := manager.Sign(42)
	require.NoError(t, err)

	claims, err := manager.Verify(signed)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	manager := newManager("test-secret", -time.Minute)

	signed, err := manager.Sign(42)
	require.NoError(t, err)

	_, err = manager.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signer := newManager("right-secret", time.Hour)
	verifier := newManager("wrong-secret", time.Hour)

	signed, err := signer.Sign(42)
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager := newManager("test-secret", time.Hour)

	_, err := manager.Verify("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hashed)

	assert.True(t, CheckPassword(hashed, "hunter2"))
	assert.False(t, CheckPassword(hashed, "hunter3"))
}
