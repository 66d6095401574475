package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// OpenLogger builds the process logger: a text handler at the configured
// level writing to LogFile when set, otherwise to fallback. The returned
// close function releases the log file.
func (c Config) OpenLogger(fallback io.Writer) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	w := fallback
	closeFn := noop
	if c.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
			return nil, noop, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, noop, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}
	if w == nil {
		w = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: c.Level()}))
	return logger, closeFn, nil
}
