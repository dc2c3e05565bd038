// Package logging configures the structured logger shared by the binaries.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/lesson-browser/internal/io"
)

// Dir is the directory under the workspace that holds the log file.
const Dir = ".lessons"

// ParseLevel maps debug, info, warn and error to slog levels. Anything else
// is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a text logger writing to w.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// OpenFile creates (or reuses) <workspace>/.lessons/lessons.log and returns a
// logger appending to it. The terminal belongs to the UI while it runs, so
// the TUI logs here instead of stderr. Close the returned file on exit.
func OpenFile(workspace string, level slog.Level) (*slog.Logger, *os.File, error) {
	dir := filepath.Join(workspace, Dir)
	if err := ioutils.EnsureDir(dir); err != nil {
		return nil, nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "lessons.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return New(f, level), f, nil
}
