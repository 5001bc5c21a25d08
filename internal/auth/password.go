package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid admin password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrMissingHash        = errors.New("admin password hash is not configured")
)

// PasswordAuthenticator checks the admin password against a bcrypt hash.
// The plaintext password is never stored.
type PasswordAuthenticator struct {
	hash []byte
}

// NewPasswordAuthenticator creates an authenticator for the given bcrypt hash.
func NewPasswordAuthenticator(hash string) (*PasswordAuthenticator, error) {
	if hash == "" {
		return nil, ErrMissingHash
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	return &PasswordAuthenticator{hash: []byte(hash)}, nil
}

// Authenticate compares credential with the stored hash.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, credential string) error {
	if credential == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(credential)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword returns a bcrypt hash of password for the configuration file.
func HashPassword(password string, cost int) (string, error) {
	if len(password) < 8 {
		return "", ErrWeakPassword
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
