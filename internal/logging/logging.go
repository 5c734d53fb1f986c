// Package logging sets up the file logger. The terminal belongs to the TUI,
// so nothing is written to stderr while it runs.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultPath returns $XDG_STATE_HOME/cadence/cadence.log.
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "cadence", "cadence.log")
}

// Setup opens path for appending (DefaultPath when empty) and returns a text
// logger at level. The returned closer closes the file. When the file
// cannot be opened, logs are discarded and the error is returned alongside
// a usable logger.
func Setup(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Discard(), nopCloser{}, err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return Discard(), nopCloser{}, err
	}

	return New(f, level), f, nil
}

// New returns a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
