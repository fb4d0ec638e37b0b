package model

import "time"

// CredentialKey is the fixed storage key under which the bearer token lives.
const CredentialKey = "jwtToken"

// SessionClaims is the unverified view of a bearer token's payload. It is for
// display only; the backend is the sole authority on token validity.
type SessionClaims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token's expiry is known and before now.
func (c SessionClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}
