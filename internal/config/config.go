// Package config resolves prodboard settings from defaults, an optional YAML
// file and PRODBOARD_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every runtime setting.
type Config struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`

	DaysBack     int     `yaml:"days_back"`
	DaysForward  int     `yaml:"days_forward"`
	IssuedStatus string  `yaml:"issued_status"`
	ViewMode     string  `yaml:"view_mode"`
	CardScale    float64 `yaml:"card_scale"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`

	Listen string `yaml:"listen"`
	// RefreshSpec is a cron spec for periodic board invalidation in serve
	// mode; empty disables it.
	RefreshSpec string `yaml:"refresh_spec"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Driver:       "sqlite",
		DSN:          defaultDSN(),
		DaysBack:     7,
		DaysForward:  21,
		IssuedStatus: "Issued",
		ViewMode:     "detailed",
		CardScale:    1.0,
		LogLevel:     "info",
		Listen:       ":8080",
		RefreshSpec:  "@every 1m",
	}
}

func defaultDSN() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "prodboard.db"
	}
	return filepath.Join(home, ".prodboard", "prodboard.db")
}

// DefaultPath is the config file location used when PRODBOARD_CONFIG is unset.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "prodboard", "config.yaml")
}

// Load resolves the configuration. path overrides PRODBOARD_CONFIG and the
// default location; a missing file at the default location is not an error.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = os.Getenv("PRODBOARD_CONFIG")
		explicit = path != ""
	}
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PRODBOARD_DRIVER"); v != "" {
		c.Driver = v
	}
	if v := os.Getenv("PRODBOARD_DB"); v != "" {
		c.DSN = v
	}
	if v := os.Getenv("PRODBOARD_DAYS_BACK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.DaysBack = n
		}
	}
	if v := os.Getenv("PRODBOARD_DAYS_FORWARD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.DaysForward = n
		}
	}
	if v := os.Getenv("PRODBOARD_ISSUED_STATUS"); v != "" {
		c.IssuedStatus = v
	}
	if v := os.Getenv("PRODBOARD_VIEW_MODE"); v != "" {
		c.ViewMode = v
	}
	if v := os.Getenv("PRODBOARD_CARD_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			c.CardScale = f
		}
	}
	if v := os.Getenv("PRODBOARD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv("PRODBOARD_LOG_FILE"); ok {
		c.LogFile = v
	}
	if v := os.Getenv("PRODBOARD_LISTEN"); v != "" {
		c.Listen = v
	}
	if v, ok := os.LookupEnv("PRODBOARD_REFRESH_SPEC"); ok {
		c.RefreshSpec = v
	}
}

// Validate rejects settings no component can work with.
func (c Config) Validate() error {
	switch c.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported driver %q (want sqlite or postgres)", c.Driver)
	}
	if c.DSN == "" {
		return errors.New("database location is empty")
	}
	if c.DaysBack < 0 || c.DaysForward < 0 {
		return fmt.Errorf("days back/forward must be >= 0, got %d/%d", c.DaysBack, c.DaysForward)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() slog.Level {
	lvl, _ := ParseLevel(c.LogLevel)
	return lvl
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
