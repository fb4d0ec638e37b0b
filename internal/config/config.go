// Package config loads application configuration from a YAML file and
// BUDGETCTL_ environment variables. Environment variables win over the file.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the config reads.
const EnvPrefix = "BUDGETCTL"

// SessionBackend selects where the bearer credential is persisted.
type SessionBackend string

const (
	SessionBackendSQLite  SessionBackend = "sqlite"
	SessionBackendKeyring SessionBackend = "keyring"
	SessionBackendMemory  SessionBackend = "memory"
)

// Config holds the validated application configuration.
type Config struct {
	APIURL         string
	PollInterval   time.Duration
	HTTPTimeout    time.Duration
	HTTPCache      bool
	SessionBackend SessionBackend
	DBPath         string
	SecretKey      string
	KeyringDir     string
	LogLevel       slog.Level
	LogFormat      string
	// BridgeAddr is the loopback listen address of the JSON bridge. Empty disables it.
	BridgeAddr string
	// File is the config file that was read, or "" when none was found.
	File string
}

// DefaultFile returns ~/.config/budgetctl/config.yaml.
func DefaultFile() string {
	return filepath.Join(baseDir(), "config.yaml")
}

func baseDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "budgetctl")
}

// Load reads configuration from BUDGETCTL_CONFIG (or DefaultFile when unset)
// and the environment, and validates it.
//
// Required: BUDGETCTL_API_URL. BUDGETCTL_SECRET_KEY is required for the sqlite
// session backend. Defaults: poll_interval 30s, http_timeout 15s, http_cache
// true, session_backend sqlite, log_level info, log_format text.
func Load() (*Config, error) {
	path, explicit := os.LookupEnv(EnvPrefix + "_CONFIG")
	if !explicit || path == "" {
		path, explicit = DefaultFile(), false
	}
	return LoadFile(path, explicit)
}

// LoadFile is Load with an explicit file path. A missing file is an error only
// when required is true.
func LoadFile(path string, required bool) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_url", "")
	v.SetDefault("poll_interval", "30s")
	v.SetDefault("http_timeout", "15s")
	v.SetDefault("http_cache", "true")
	v.SetDefault("session_backend", string(SessionBackendSQLite))
	v.SetDefault("db_path", filepath.Join(baseDir(), "budgetctl.db"))
	v.SetDefault("secret_key", "")
	v.SetDefault("keyring_dir", filepath.Join(baseDir(), "keyring"))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("bridge_addr", "")

	var file string
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		switch {
		case err == nil:
			file = path
		case (errors.As(err, &notFound) || errors.As(err, &pathErr)) && !required:
		default:
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{
		APIURL:         strings.TrimSpace(v.GetString("api_url")),
		SessionBackend: SessionBackend(strings.ToLower(v.GetString("session_backend"))),
		DBPath:         v.GetString("db_path"),
		SecretKey:      strings.TrimSpace(v.GetString("secret_key")),
		KeyringDir:     v.GetString("keyring_dir"),
		LogFormat:      strings.ToLower(v.GetString("log_format")),
		BridgeAddr:     strings.TrimSpace(v.GetString("bridge_addr")),
		File:           file,
	}

	var err error
	if cfg.PollInterval, err = positiveDuration(v, "poll_interval"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = positiveDuration(v, "http_timeout"); err != nil {
		return nil, err
	}
	if cfg.HTTPCache, err = strconv.ParseBool(v.GetString("http_cache")); err != nil {
		return nil, fmt.Errorf("%s_HTTP_CACHE has invalid value %q: %w", EnvPrefix, v.GetString("http_cache"), err)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("log_level"))); err != nil {
		return nil, fmt.Errorf("%s_LOG_LEVEL: %w", EnvPrefix, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func positiveDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s_%s has invalid duration %q: %w", EnvPrefix, strings.ToUpper(key), raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s_%s must be positive, got %s", EnvPrefix, strings.ToUpper(key), d)
	}
	return d, nil
}

func (c *Config) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("%s_API_URL is required", EnvPrefix)
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s_API_URL must be an http(s) URL, got %q", EnvPrefix, c.APIURL)
	}

	switch c.SessionBackend {
	case SessionBackendSQLite:
		if c.SecretKey == "" {
			return fmt.Errorf("%s_SECRET_KEY is required for the sqlite session backend", EnvPrefix)
		}
	case SessionBackendKeyring, SessionBackendMemory:
	default:
		return fmt.Errorf("%s_SESSION_BACKEND must be one of sqlite, keyring, memory; got %q", EnvPrefix, c.SessionBackend)
	}

	if c.SecretKey != "" {
		key, err := hex.DecodeString(c.SecretKey)
		if err != nil || len(key) != 32 {
			return fmt.Errorf("%s_SECRET_KEY must be 64 hex characters", EnvPrefix)
		}
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%s_LOG_FORMAT must be text or json, got %q", EnvPrefix, c.LogFormat)
	}

	if c.BridgeAddr != "" {
		if err := requireLoopback(c.BridgeAddr); err != nil {
			return fmt.Errorf("%s_BRIDGE_ADDR: %w", EnvPrefix, err)
		}
	}
	return nil
}

// requireLoopback rejects listen addresses reachable from other hosts.
func requireLoopback(addr string) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	if host == "localhost" {
		return nil
	}
	ip := net.ParseIP(host)
	if ip == nil || !ip.IsLoopback() {
		return fmt.Errorf("%q is not a loopback address", addr)
	}
	return nil
}

// NewLogger builds the process logger. Output goes to stderr so command
// output on stdout stays machine-readable.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
