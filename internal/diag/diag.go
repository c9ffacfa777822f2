// Package diag opens the diagnostics log. The TUI owns the terminal, so
// diagnostics always go to a file.
package diag

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Open creates (or appends to) the log file at path and returns a logger
// writing to it at the given level. Callers must Close the returned closer.
func Open(path, level string) (*log.Logger, io.Closer, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil, fmt.Errorf("log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	return New(file, level), file, nil
}

// New returns a logger writing plain text to w. Unknown levels fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "creahut",
		ReportTimestamp: true,
		TimeFormat:      "2006/01/02 15:04:05",
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
