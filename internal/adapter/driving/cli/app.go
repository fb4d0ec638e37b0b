// Package cli implements the budgetctl command line.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ericfisherdev/budgetctl/internal/application"
	"github.com/ericfisherdev/budgetctl/internal/domain/model"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

// ErrUsage marks errors caused by invalid arguments.
var ErrUsage = errors.New("usage error")

// Prompter asks the user for input that was not given as flags.
type Prompter interface {
	Login(email string) (string, string, error)
	Register(fullName, email string) (string, string, string, error)
}

// Deps are the collaborators the commands run against.
type Deps struct {
	Auth     *application.AuthService
	Session  *application.Session
	API      driven.BudgetAPIClient
	Prompter Prompter
	// Watch runs the live notification view until ctx is done.
	Watch  func(ctx context.Context) error
	Out    io.Writer
	Err    io.Writer
	Logger *slog.Logger
	Now    func() time.Time
}

// App dispatches command lines to commands.
type App struct {
	Deps
	json bool
}

// New creates an App.
func New(deps Deps) *App {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	return &App{Deps: deps}
}

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string) error
	// keepsSession is set for commands whose 401 says nothing about the
	// stored token, such as a wrong password.
	keepsSession bool
}

func (a *App) commands() []command {
	return []command{
		{"login", "sign in and store the session", a.login, true},
		{"register", "create an account", a.register, true},
		{"logout", "end the session", a.logout, false},
		{"status", "show who is signed in", a.status, false},
		{"categories", "list, add (add) or remove (rm) categories", a.categories, false},
		{"transactions", "list, add (add) or remove (rm) transactions", a.transactions, false},
		{"budgets", "list or set (set) monthly budgets", a.budgets, false},
		{"dashboard", "show the monthly summary", a.dashboard, false},
		{"notifications", "list notifications or mark one read (read <id>)", a.notifications, false},
		{"watch", "live notification view", a.watch, false},
	}
}

// Run executes one command line (without the program name). An
// authentication failure clears the stored session before returning, except
// for login and register.
func (a *App) Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("budgetctl", flag.ContinueOnError)
	fs.SetOutput(a.Err)
	fs.BoolVar(&a.json, "json", false, "print JSON instead of tables")
	fs.Usage = a.usage
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	rest := fs.Args()
	if len(rest) == 0 {
		a.usage()
		return ErrUsage
	}

	for _, cmd := range a.commands() {
		if cmd.name != rest[0] {
			continue
		}
		err := cmd.run(ctx, rest[1:])
		if err != nil && a.Auth != nil && !cmd.keepsSession {
			a.Auth.HandleAuthFailure(ctx, err)
		}
		return err
	}

	if rest[0] == "help" {
		a.usage()
		return nil
	}
	return fmt.Errorf("%w: unknown command %q", ErrUsage, rest[0])
}

func (a *App) usage() {
	fmt.Fprintln(a.Err, "usage: budgetctl [-json] <command> [arguments]")
	fmt.Fprintln(a.Err)
	fmt.Fprintln(a.Err, "commands:")
	for _, cmd := range a.commands() {
		fmt.Fprintf(a.Err, "  %-14s %s\n", cmd.name, cmd.summary)
	}
}

// Describe renders err for the terminal. API errors show the server's field
// messages verbatim when there are any.
func Describe(err error) string {
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	return apiErr.UserMessage()
}

func newFlagSet(a *App, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.Err)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

func (a *App) watch(ctx context.Context, args []string) error {
	if err := parse(newFlagSet(a, "watch"), args); err != nil {
		return err
	}
	if a.Watch == nil {
		return errors.New("watch is not available")
	}
	return a.Watch(ctx)
}
