package driven

import (
	"context"
	"net/url"
)

// RequestOptions carries the optional parts of an outbound API call.
// Body, when non-nil, is marshaled as JSON.
type RequestOptions struct {
	Params url.Values
	Body   any
	// NoCache makes the call reach the server even when a cached response
	// is still fresh.
	NoCache bool
}

// Gateway defines the driven port through which every domain API call passes.
// On a 2xx response it returns the raw body; on any other outcome it returns a
// *model.APIError. Implementations never retry.
type Gateway interface {
	Send(ctx context.Context, method, path string, opts RequestOptions) ([]byte, error)
}

// TokenSource is the read-only view of the current session credential.
// An empty string means unauthenticated.
type TokenSource interface {
	Token() string
}
