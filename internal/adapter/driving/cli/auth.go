package cli

import (
	"context"
	"fmt"
)

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet(a, "login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (prompted when omitted)")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *email == "" || *password == "" {
		if a.Prompter == nil {
			return fmt.Errorf("%w: -email and -password are required", ErrUsage)
		}
		var err error
		if *email, *password, err = a.Prompter.Login(*email); err != nil {
			return err
		}
	}

	if err := a.Auth.Login(ctx, *email, *password); err != nil {
		return err
	}

	name := *email
	if claims, err := a.Session.Claims(); err == nil && claims.Subject != "" {
		name = claims.Subject
	}
	fmt.Fprintf(a.Out, "Logged in as %s.\n", name)
	return nil
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := newFlagSet(a, "register")
	fullName := fs.String("name", "", "full name")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password, at least 8 characters (prompted when omitted)")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *fullName == "" || *email == "" || *password == "" {
		if a.Prompter == nil {
			return fmt.Errorf("%w: -name, -email and -password are required", ErrUsage)
		}
		var err error
		if *fullName, *email, *password, err = a.Prompter.Register(*fullName, *email); err != nil {
			return err
		}
	}

	msg, err := a.Auth.Register(ctx, *fullName, *email, *password)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = "Registered."
	}
	fmt.Fprintln(a.Out, msg)
	fmt.Fprintln(a.Out, "Run `budgetctl login` to sign in.")
	return nil
}

func (a *App) logout(ctx context.Context, args []string) error {
	if err := parse(newFlagSet(a, "logout"), args); err != nil {
		return err
	}
	if err := a.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.Out, "Logged out.")
	return nil
}

func (a *App) status(_ context.Context, args []string) error {
	if err := parse(newFlagSet(a, "status"), args); err != nil {
		return err
	}

	if !a.Session.Authenticated() {
		fmt.Fprintln(a.Out, "Not logged in.")
		return nil
	}

	claims, err := a.Session.Claims()
	if err != nil {
		a.Logger.Debug("reading session claims", "error", err)
		fmt.Fprintln(a.Out, "Logged in (token details unavailable).")
		return nil
	}

	subject := claims.Subject
	if subject == "" {
		subject = "unknown user"
	}
	fmt.Fprintf(a.Out, "Logged in as %s.\n", subject)
	if !claims.ExpiresAt.IsZero() {
		state := "expires"
		if claims.Expired(a.Now()) {
			state = "expired"
		}
		fmt.Fprintf(a.Out, "Session %s %s.\n", state, claims.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
