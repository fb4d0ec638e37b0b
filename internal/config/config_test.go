package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every BUDGETCTL_ env var that Load() reads.
var allConfigKeys = []string{
	"BUDGETCTL_CONFIG",
	"BUDGETCTL_API_URL",
	"BUDGETCTL_POLL_INTERVAL",
	"BUDGETCTL_HTTP_TIMEOUT",
	"BUDGETCTL_HTTP_CACHE",
	"BUDGETCTL_SESSION_BACKEND",
	"BUDGETCTL_DB_PATH",
	"BUDGETCTL_SECRET_KEY",
	"BUDGETCTL_KEYRING_DIR",
	"BUDGETCTL_LOG_LEVEL",
	"BUDGETCTL_LOG_FORMAT",
	"BUDGETCTL_BRIDGE_ADDR",
}

var testSecret = strings.Repeat("ab", 32)

// isolateConfigEnv saves and unsets all BUDGETCTL_ env vars so tests don't
// inherit values from the host environment. It also points the default config
// file at an empty temp dir. t.Cleanup restores original values.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("BUDGETCTL_API_URL", "https://budget.example.com")
	t.Setenv("BUDGETCTL_POLL_INTERVAL", "1m")
	t.Setenv("BUDGETCTL_HTTP_TIMEOUT", "5s")
	t.Setenv("BUDGETCTL_HTTP_CACHE", "false")
	t.Setenv("BUDGETCTL_DB_PATH", "/tmp/test.db")
	t.Setenv("BUDGETCTL_SECRET_KEY", testSecret)
	t.Setenv("BUDGETCTL_LOG_LEVEL", "debug")
	t.Setenv("BUDGETCTL_LOG_FORMAT", "json")
	t.Setenv("BUDGETCTL_BRIDGE_ADDR", "127.0.0.1:8765")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://budget.example.com", cfg.APIURL)
	assert.Equal(t, time.Minute, cfg.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.False(t, cfg.HTTPCache)
	assert.Equal(t, SessionBackendSQLite, cfg.SessionBackend)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "127.0.0.1:8765", cfg.BridgeAddr)
	assert.Empty(t, cfg.File)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("BUDGETCTL_API_URL", "http://localhost:8080")
	t.Setenv("BUDGETCTL_SESSION_BACKEND", "memory")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.True(t, cfg.HTTPCache)
	assert.Equal(t, SessionBackendMemory, cfg.SessionBackend)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.BridgeAddr)
	assert.True(t, strings.HasSuffix(cfg.DBPath, "budgetctl.db"))
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	isolateConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_url: https://file.example.com\nsession_backend: keyring\npoll_interval: 45s\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("BUDGETCTL_CONFIG", path)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://file.example.com", cfg.APIURL)
	assert.Equal(t, SessionBackendKeyring, cfg.SessionBackend)
	assert.Equal(t, 45*time.Second, cfg.PollInterval)
	assert.Equal(t, path, cfg.File)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	isolateConfigEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: https://file.example.com\nsession_backend: memory\n"), 0o600))
	t.Setenv("BUDGETCTL_CONFIG", path)
	t.Setenv("BUDGETCTL_API_URL", "https://env.example.com")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIURL)
}

func TestLoad_ExplicitConfigMissing(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("BUDGETCTL_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("BUDGETCTL_API_URL", "https://budget.example.com")
	t.Setenv("BUDGETCTL_SESSION_BACKEND", "memory")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing api url",
			env:     map[string]string{"BUDGETCTL_SESSION_BACKEND": "memory"},
			wantErr: "BUDGETCTL_API_URL is required",
		},
		{
			name:    "api url without scheme",
			env:     map[string]string{"BUDGETCTL_API_URL": "budget.example.com", "BUDGETCTL_SESSION_BACKEND": "memory"},
			wantErr: "BUDGETCTL_API_URL",
		},
		{
			name:    "bad poll interval",
			env:     map[string]string{"BUDGETCTL_API_URL": "http://x", "BUDGETCTL_SESSION_BACKEND": "memory", "BUDGETCTL_POLL_INTERVAL": "soon"},
			wantErr: "BUDGETCTL_POLL_INTERVAL",
		},
		{
			name:    "zero timeout",
			env:     map[string]string{"BUDGETCTL_API_URL": "http://x", "BUDGETCTL_SESSION_BACKEND": "memory", "BUDGETCTL_HTTP_TIMEOUT": "0s"},
			wantErr: "BUDGETCTL_HTTP_TIMEOUT",
		},
		{
			name:    "unknown backend",
			env:     map[string]string{"BUDGETCTL_API_URL": "http://x", "BUDGETCTL_SESSION_BACKEND": "cookie"},
			wantErr: "BUDGETCTL_SESSION_BACKEND",
		},
		{
			name:    "sqlite without secret",
			env:     map[string]string{"BUDGETCTL_API_URL": "http://x"},
			wantErr: "BUDGETCTL_SECRET_KEY",
		},
		{
			name:    "short secret",
			env:     map[string]string{"BUDGETCTL_API_URL": "http://x", "BUDGETCTL_SECRET_KEY": "abcd"},
			wantErr: "BUDGETCTL_SECRET_KEY",
		},
		{
			name:    "bad log level",
			env:     map[string]string{"BUDGETCTL_API_URL": "http://x", "BUDGETCTL_SESSION_BACKEND": "memory", "BUDGETCTL_LOG_LEVEL": "chatty"},
			wantErr: "BUDGETCTL_LOG_LEVEL",
		},
		{
			name:    "bad log format",
			env:     map[string]string{"BUDGETCTL_API_URL": "http://x", "BUDGETCTL_SESSION_BACKEND": "memory", "BUDGETCTL_LOG_FORMAT": "xml"},
			wantErr: "BUDGETCTL_LOG_FORMAT",
		},
		{
			name:    "bridge on all interfaces",
			env:     map[string]string{"BUDGETCTL_API_URL": "http://x", "BUDGETCTL_SESSION_BACKEND": "memory", "BUDGETCTL_BRIDGE_ADDR": "0.0.0.0:8765"},
			wantErr: "BUDGETCTL_BRIDGE_ADDR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestRequireLoopback(t *testing.T) {
	assert.NoError(t, requireLoopback("127.0.0.1:8765"))
	assert.NoError(t, requireLoopback("[::1]:8765"))
	assert.NoError(t, requireLoopback("localhost:8765"))
	assert.Error(t, requireLoopback(":8765"))
	assert.Error(t, requireLoopback("192.168.1.10:8765"))
	assert.Error(t, requireLoopback("no-port"))
}
