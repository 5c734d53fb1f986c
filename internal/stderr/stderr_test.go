//go:build !windows

package stderr

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestCapture_LogsLines(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	c, err := Start(logger)
	if err != nil {
		t.Skipf("cannot redirect stderr: %v", err)
	}
	fmt.Fprintln(os.Stderr, "ALSA lib pcm.c: underrun occurred")
	fmt.Fprintln(os.Stderr, "   ")
	c.Stop()

	out := buf.String()
	if !strings.Contains(out, "underrun occurred") {
		t.Errorf("log = %q, want captured line", out)
	}
	if got := strings.Count(out, "msg=stderr"); got != 1 {
		t.Errorf("logged %d lines, want 1 (blank lines dropped)", got)
	}
}

func TestCapture_StopTwice(t *testing.T) {
	c, err := Start(nil)
	if err != nil {
		t.Skipf("cannot redirect stderr: %v", err)
	}
	c.Stop()
	c.Stop()
}
