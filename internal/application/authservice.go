package application

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 8

// AuthService runs the login, registration and logout flows. It is the only
// writer of the Session.
type AuthService struct {
	api     driven.AuthAPI
	session *Session
	logger  *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(api driven.AuthAPI, session *Session, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{api: api, session: session, logger: logger}
}

// Login exchanges credentials for a token and makes it the active session.
// API errors are returned unchanged.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	if err := s.session.Set(ctx, token); err != nil {
		return err
	}

	s.logger.Info("logged in", "email", strings.TrimSpace(email))
	return nil
}

// Register creates an account and returns the server's confirmation message.
// A password shorter than MinPasswordLength is rejected without a network call.
func (s *AuthService) Register(ctx context.Context, fullName, email, password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", &model.APIError{
			Kind:   model.ErrorKindValidation,
			Fields: map[string]string{"password": "Password must be at least 8 characters long."},
		}
	}

	return s.api.Register(ctx, strings.TrimSpace(fullName), strings.TrimSpace(email), password)
}

// Logout ends the session.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("logged out")
	return nil
}

// HandleAuthFailure forces a logout when err is an AuthenticationError and
// reports whether it did.
func (s *AuthService) HandleAuthFailure(ctx context.Context, err error) bool {
	if !model.IsAuthentication(err) {
		return false
	}

	if clearErr := s.session.Clear(ctx); clearErr != nil {
		s.logger.Warn("failed to clear session after authentication failure", "error", clearErr)
	}
	s.logger.Info("session rejected by server, logged out")
	return true
}
