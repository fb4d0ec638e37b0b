// Package keyring stores the client credential in the operating system's
// secret store (Keychain, Secret Service, WinCred, pass) with an encrypted
// file fallback.
package keyring

import (
	"context"
	"errors"
	"fmt"

	"github.com/99designs/keyring"

	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

const serviceName = "budgetctl"

// Compile-time interface satisfaction check.
var _ driven.CredentialStore = (*Store)(nil)

// Config selects where the file fallback lives and how it is unlocked.
type Config struct {
	// FileDir holds the encrypted file backend, e.g. "~/.config/budgetctl/keyring".
	FileDir string
	// FilePassword unlocks the file backend. Empty uses a fixed passphrase.
	FilePassword string
}

// Store is a CredentialStore over a keyring.Keyring.
type Store struct {
	ring keyring.Keyring
}

// Open opens the first available system backend.
func Open(cfg Config) (*Store, error) {
	password := cfg.FilePassword
	if password == "" {
		password = "budgetctl-file-key"
	}

	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  cfg.FileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt(password),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return New(ring), nil
}

// New wraps an already opened keyring.
func New(ring keyring.Keyring) *Store {
	return &Store{ring: ring}
}

// Get returns the value under key, or ("", nil) when none is stored.
func (s *Store) Get(_ context.Context, key string) (string, error) {
	item, err := s.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores or replaces the value under key.
func (s *Store) Set(_ context.Context, key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:         key,
		Data:        []byte(value),
		Label:       "budgetctl session",
		Description: "Bearer token for the budget API",
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes the value under key. Deleting a missing key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}
