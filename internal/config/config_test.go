package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("PRODBOARD_CONFIG", "")
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Driver)
	assert.Equal(t, 7, cfg.DaysBack)
	assert.Equal(t, 21, cfg.DaysForward)
	assert.Equal(t, "Issued", cfg.IssuedStatus)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Equal(t, "@every 1m", cfg.RefreshSpec)
}

func TestLoad_FileThenEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
driver: postgres
dsn: postgres://board@localhost/shop?sslmode=disable
days_back: 3
issued_status: Выдан
log_level: debug
`), 0o600))
	t.Setenv("PRODBOARD_DAYS_BACK", "5")
	t.Setenv("PRODBOARD_REFRESH_SPEC", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, "postgres://board@localhost/shop?sslmode=disable", cfg.DSN)
	assert.Equal(t, 5, cfg.DaysBack, "env wins over file")
	assert.Equal(t, 21, cfg.DaysForward, "unset keys keep defaults")
	assert.Equal(t, "Выдан", cfg.IssuedStatus)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Empty(t, cfg.RefreshSpec, "empty env disables periodic refresh")
}

func TestLoad_EnvPath(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9090\"\n"), 0o600))
	t.Setenv("PRODBOARD_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Listen)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	isolate(t)

	t.Setenv("PRODBOARD_DRIVER", "oracle")
	_, err := Load("")
	assert.ErrorContains(t, err, "unsupported driver")

	t.Setenv("PRODBOARD_DRIVER", "")
	t.Setenv("PRODBOARD_LOG_LEVEL", "chatty")
	_, err = Load("")
	assert.ErrorContains(t, err, "unknown log level")
}

func TestLoad_BadNumbersIgnored(t *testing.T) {
	isolate(t)
	t.Setenv("PRODBOARD_DAYS_FORWARD", "lots")
	t.Setenv("PRODBOARD_CARD_SCALE", "-1")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 21, cfg.DaysForward)
	assert.Equal(t, 1.0, cfg.CardScale)
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestOpenLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "board.log")
	cfg := DefaultConfig()
	cfg.LogFile = path
	cfg.LogLevel = "warn"

	logger, closeFn, err := cfg.OpenLogger(os.Stderr)
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("lookup degraded", "lookup", "materials")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "lookup=materials")
}
