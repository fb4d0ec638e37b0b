package cli

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/ericfisherdev/budgetctl/internal/application"
)

// ErrAborted is returned when the user cancels an interactive prompt.
var ErrAborted = errors.New("aborted")

// HuhPrompter asks for credentials with terminal forms.
type HuhPrompter struct{}

var _ Prompter = HuhPrompter{}

// Login prompts for an email and password. A known email is prefilled.
func (HuhPrompter) Login(email string) (string, string, error) {
	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(validateRequired("Password")),
		),
	)
	if err := runForm(form); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(email), password, nil
}

// Register prompts for the fields of a new account.
func (HuhPrompter) Register(fullName, email string) (string, string, string, error) {
	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Full name").
				Value(&fullName).
				Validate(validateRequired("Full name")),
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&email).
				Validate(validateEmail),
			huh.NewInput().
				Title("Password").
				Description(fmt.Sprintf("At least %d characters", application.MinPasswordLength)).
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(validatePassword),
		),
	)
	if err := runForm(form); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(fullName), strings.TrimSpace(email), password, nil
}

func runForm(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return fmt.Errorf("running prompt: %w", err)
	}
	return nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return errors.New("enter a valid email address")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < application.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", application.MinPasswordLength)
	}
	return nil
}
