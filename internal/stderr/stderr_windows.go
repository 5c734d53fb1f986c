//go:build windows

package stderr

import (
	"log/slog"
	"os"
)

// Capture is a no-op on Windows; its audio backend does not write to fd 2.
type Capture struct{}

// Start returns a no-op capture.
func Start(_ *slog.Logger) (*Capture, error) {
	return &Capture{}, nil
}

// WriteOriginal writes to stderr.
func (c *Capture) WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Stop does nothing.
func (c *Capture) Stop() {}
