package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for minimal images

	apiadapter "github.com/ericfisherdev/budgetctl/internal/adapter/driven/api"
	keyringadapter "github.com/ericfisherdev/budgetctl/internal/adapter/driven/keyring"
	"github.com/ericfisherdev/budgetctl/internal/adapter/driven/memory"
	sqliteadapter "github.com/ericfisherdev/budgetctl/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/budgetctl/internal/adapter/driving/cli"
	httphandler "github.com/ericfisherdev/budgetctl/internal/adapter/driving/http"
	"github.com/ericfisherdev/budgetctl/internal/adapter/driving/tui"
	"github.com/ericfisherdev/budgetctl/internal/application"
	"github.com/ericfisherdev/budgetctl/internal/config"
	"github.com/ericfisherdev/budgetctl/internal/domain/port/driven"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// 1. Optional .env, then configuration (fail fast on invalid values).
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "error: reading .env:", err)
		return 1
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	logger.Debug("config loaded",
		"file", cfg.File,
		"api_url", cfg.APIURL,
		"session_backend", cfg.SessionBackend,
		"poll_interval", cfg.PollInterval,
	)

	// 2. Signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Credential store and session.
	store, closeStore, err := openCredentialStore(cfg)
	if err != nil {
		logger.Error("opening credential store", "backend", cfg.SessionBackend, "error", err)
		return 1
	}
	defer closeStore()

	session := application.NewSession(store, logger)
	if err := session.Load(ctx); err != nil {
		logger.Error("loading session", "error", err)
		return 1
	}

	// 4. Gateway and services.
	gw, err := apiadapter.NewGateway(apiadapter.GatewayConfig{
		BaseURL: cfg.APIURL,
		Timeout: cfg.HTTPTimeout,
		Cache:   cfg.HTTPCache,
	}, session, logger)
	if err != nil {
		logger.Error("creating gateway", "error", err)
		return 1
	}
	client := apiadapter.NewClient(gw)
	auth := application.NewAuthService(client, session, logger)

	deps := cli.Deps{
		Auth:    auth,
		Session: session,
		API:     client,
		Watch: func(ctx context.Context) error {
			return watch(ctx, cfg, client, logger)
		},
		Out:    os.Stdout,
		Err:    os.Stderr,
		Logger: logger,
	}
	if isTerminal(os.Stdin) {
		deps.Prompter = cli.HuhPrompter{}
	}

	// 5. Dispatch.
	if err := cli.New(deps).Run(ctx, args); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			if msg := err.Error(); msg != cli.ErrUsage.Error() {
				fmt.Fprintln(os.Stderr, msg)
			}
			return 2
		}
		fmt.Fprintln(os.Stderr, "error:", cli.Describe(err))
		logger.Debug("command failed", "error", err)
		return 1
	}
	return 0
}

// openCredentialStore returns the configured backend and a func releasing it.
func openCredentialStore(cfg *config.Config) (driven.CredentialStore, func(), error) {
	switch cfg.SessionBackend {
	case config.SessionBackendKeyring:
		store, err := keyringadapter.Open(keyringadapter.Config{FileDir: cfg.KeyringDir})
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case config.SessionBackendMemory:
		return memory.NewStore(), func() {}, nil

	default:
		key, err := sqliteadapter.ParseKey(cfg.SecretKey)
		if err != nil {
			return nil, nil, err
		}
		db, err := sqliteadapter.NewDB(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}
		return sqliteadapter.NewCredentialRepo(db, key), closeDB, nil
	}
}

// watch runs the notification TUI and, when configured, the loopback bridge
// until the TUI quits or ctx is canceled. The store is stopped on every path.
func watch(ctx context.Context, cfg *config.Config, client *apiadapter.Client, logger *slog.Logger) error {
	store := application.NewNotificationStore(client, cfg.PollInterval, logger)
	toaster := application.NewToaster(application.DefaultToastDuration)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := store.Start(ctx); err != nil {
		return err
	}
	defer store.Stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return tui.Run(gctx, store, toaster)
	})

	if cfg.BridgeAddr != "" {
		handler := httphandler.NewServeMux(httphandler.NewHandler(store, logger), logger)
		g.Go(func() error {
			return httphandler.Serve(gctx, cfg.BridgeAddr, handler, logger)
		})
	}

	return g.Wait()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
