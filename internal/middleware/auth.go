package middleware

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/kisankhidmat/khidmat/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// SubjectKey is the context key for storing the authenticated session subject.
const SubjectKey contextKey = "subject"

// GetSubject extracts the session subject from the context.
// Returns empty string if not found.
func GetSubject(ctx context.Context) string {
	subject, _ := ctx.Value(SubjectKey).(string)
	return subject
}

// RequireAdmin returns an interceptor that requires a valid admin session token
// in the Authorization header and adds its subject to the request context.
func RequireAdmin(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			procedure := req.Spec().Procedure
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				slog.Warn("Admin call without token", "procedure", procedure)
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				slog.Warn("Malformed authorization header", "procedure", procedure)
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(parts[1])
			if err != nil {
				slog.Warn("Admin token rejected", "procedure", procedure, "error", err)
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			ctx = context.WithValue(ctx, SubjectKey, claims.Subject)
			return next(ctx, req)
		}
	}
}
