package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies a failed API call.
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindNetwork
	ErrorKindAuthentication
	ErrorKindValidation
	ErrorKindServer
)

// String returns the taxonomy name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrorKindNetwork:
		return "NetworkError"
	case ErrorKindAuthentication:
		return "AuthenticationError"
	case ErrorKindValidation:
		return "ValidationError"
	case ErrorKindServer:
		return "ServerError"
	default:
		return "UnknownError"
	}
}

// Kind sentinels for use with errors.Is. They match any *APIError of the same kind.
var (
	ErrNetwork        = &APIError{Kind: ErrorKindNetwork}
	ErrAuthentication = &APIError{Kind: ErrorKindAuthentication}
	ErrValidation     = &APIError{Kind: ErrorKindValidation}
	ErrServer         = &APIError{Kind: ErrorKindServer}
	ErrUnknown        = &APIError{Kind: ErrorKindUnknown}
)

// APIError is the normalized failure of a single API call. Status is 0 when no
// HTTP response was received. Fields carries the server's structured error
// payload (key -> human-readable message) unchanged.
type APIError struct {
	Kind    ErrorKind
	Method  string
	Path    string
	Status  int
	Fields  map[string]string
	Message string
	Err     error
}

// Error implements error.
func (e *APIError) Error() string {
	var b strings.Builder
	if e.Method != "" || e.Path != "" {
		fmt.Fprintf(&b, "%s %s: ", e.Method, e.Path)
	}
	b.WriteString(e.Kind.String())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if len(e.Fields) > 0 {
		b.WriteString(": ")
		b.WriteString(joinFields(e.Fields, "; ", true))
	} else if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is matches kind sentinels: a bare *APIError target (no status, fields or
// cause) compares by Kind only.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	if t.Status == 0 && t.Fields == nil && t.Err == nil && t.Method == "" && t.Path == "" && t.Message == "" {
		return e.Kind == t.Kind
	}
	return e == t
}

// UserMessage renders the error for display. Server field messages are shown
// verbatim, joined in key order; otherwise a generic line per kind is used.
func (e *APIError) UserMessage() string {
	if len(e.Fields) > 0 {
		return joinFields(e.Fields, ", ", false)
	}
	switch e.Kind {
	case ErrorKindNetwork:
		return "Could not reach the server. Please try again later."
	case ErrorKindAuthentication:
		return "Your session is not valid. Please log in again."
	case ErrorKindServer:
		return "The server failed to process the request. Please try again later."
	case ErrorKindValidation:
		return "The request was rejected."
	default:
		if e.Message != "" {
			return e.Message
		}
		return "Something went wrong."
	}
}

// KindOf returns the ErrorKind of err, or ErrorKindUnknown when err is not an *APIError.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ErrorKindUnknown
}

// IsAuthentication reports whether err (or any error in its chain) is an AuthenticationError.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

func joinFields(fields map[string]string, sep string, withKeys bool) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if withKeys {
			parts = append(parts, k+": "+fields[k])
		} else {
			parts = append(parts, fields[k])
		}
	}
	return strings.Join(parts, sep)
}
