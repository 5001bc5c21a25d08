package auth

import "context"

// Authenticator verifies the shared admin credential.
type Authenticator interface {
	// Authenticate returns nil if credential grants admin access.
	Authenticate(ctx context.Context, credential string) error
}
