package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/kisankhidmat/khidmat/internal/auth"
	"github.com/kisankhidmat/khidmat/pkg/api"
)

// AuthService exchanges the admin password for a session token.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Login verifies the admin password and returns a session token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request")

	if req.Msg.Password == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, validationError("password is required"))
	}

	if err := s.authenticator.Authenticate(ctx, req.Msg.Password); err != nil {
		s.logger.Warn("Login failed", "error", err)
		return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidCredentials)
	}

	token, expiresAt, err := s.jwtManager.Generate()
	if err != nil {
		s.logger.Error("Failed to generate token", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Admin logged in", "expires_at", expiresAt)
	return connect.NewResponse(&api.LoginResponse{Token: token, ExpiresAt: expiresAt}), nil
}
