package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

// ErrNoSession is returned by Claims when no credential is held.
var ErrNoSession = errors.New("not logged in")

// Compile-time interface satisfaction check.
var _ driven.TokenSource = (*Session)(nil)

// Session holds the process-wide bearer credential. Reads come from the
// Gateway on every request; writes come only from AuthService. The in-memory
// value is mirrored to a CredentialStore under model.CredentialKey.
type Session struct {
	mu     sync.RWMutex
	token  string
	store  driven.CredentialStore
	logger *slog.Logger
}

// NewSession creates an empty Session backed by store.
func NewSession(store driven.CredentialStore, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{store: store, logger: logger}
}

// Load restores the persisted credential, if any.
func (s *Session) Load(ctx context.Context) error {
	token, err := s.store.Get(ctx, model.CredentialKey)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if token != "" {
		s.logger.Debug("session restored")
	}
	return nil
}

// Token returns the current credential, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a credential is held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Set persists token and then makes it the active credential.
func (s *Session) Set(ctx context.Context, token string) error {
	if token == "" {
		return errors.New("session token must not be empty")
	}
	if err := s.store.Set(ctx, model.CredentialKey, token); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Clear drops the active credential and deletes the persisted copy. Memory is
// cleared even when the store fails, so the process is unauthenticated either way.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()

	if err := s.store.Delete(ctx, model.CredentialKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Claims decodes the credential's payload without verifying its signature.
// The result is for display only.
func (s *Session) Claims() (model.SessionClaims, error) {
	token := s.Token()
	if token == "" {
		return model.SessionClaims{}, ErrNoSession
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return model.SessionClaims{}, fmt.Errorf("decoding token: %w", err)
	}

	var out model.SessionClaims
	out.Subject, _ = claims.GetSubject()
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
