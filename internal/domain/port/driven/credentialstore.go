package driven

import (
	"context"
	"errors"
)

// ErrEncryptionKeyNotSet is returned by CredentialStore operations when
// BUDGETCTL_SECRET_KEY has not been configured for an encrypting backend.
var ErrEncryptionKeyNotSet = errors.New("encryption key not configured: set BUDGETCTL_SECRET_KEY")

// CredentialStore defines the driven port for durable client-side credential
// persistence. Values cross this boundary as plaintext; adapters handle any
// encryption.
type CredentialStore interface {
	// Get returns the value stored under key, or ("", nil) if none exists.
	Get(ctx context.Context, key string) (string, error)

	// Set stores or replaces the value under key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}
