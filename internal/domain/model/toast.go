package model

// Toast is a short-lived feedback message shown to the user.
type Toast struct {
	Open     bool
	Message  string
	Severity Severity
}
