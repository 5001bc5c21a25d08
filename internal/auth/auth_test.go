package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordAuthenticator(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	require.NoError(t, err)

	a, err := NewPasswordAuthenticator(hash)
	require.NoError(t, err)

	ctx := context.Background()
	assert.NoError(t, a.Authenticate(ctx, "correct horse"))
	assert.ErrorIs(t, a.Authenticate(ctx, "wrong horse"), ErrInvalidCredentials)
	assert.ErrorIs(t, a.Authenticate(ctx, ""), ErrInvalidCredentials)
}

func TestNewPasswordAuthenticatorRejectsBadHash(t *testing.T) {
	_, err := NewPasswordAuthenticator("")
	assert.ErrorIs(t, err, ErrMissingHash)

	_, err = NewPasswordAuthenticator("plaintext-password")
	assert.Error(t, err)
}

func TestHashPasswordRejectsShortPassword(t *testing.T) {
	_, err := HashPassword("short", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret-key-32-bytes-long!!!", time.Hour)

	token, expiresAt, err := m.Generate()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, AdminSubject, claims.Subject)

	other := NewJWTManager("another-secret", time.Hour)
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerExpiry(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute)
	token, _, err := m.Generate()
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
