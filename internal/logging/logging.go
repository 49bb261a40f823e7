// Package logging builds the hook's diagnostic logger.
//
// Stdout belongs to the hook framework, so log records only ever go to a log
// file and, when enabled, stderr. With neither configured the logger discards
// everything.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	slogmulti "github.com/samber/slog-multi"

	"github.com/leefowlercu/agent-hook-memory-recall/internal/config"
)

// New creates a logger from the logging configuration. The returned close
// function releases the log file and is safe to call when none was opened.
func New(cfg config.LoggingConfig, stderr io.Writer) (*slog.Logger, func() error) {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handlers []slog.Handler
	closeFn := func() error { return nil }

	if cfg.LogFile != "" {
		logFile, err := openLogFile(cfg.LogFile)
		if err != nil {
			// Can't log the failure anywhere else yet
			fmt.Fprintf(stderr, "Failed to open log file %s: %v\n", cfg.LogFile, err)
		} else {
			handlers = append(handlers, newHandler(logFile, cfg.Format, opts))
			closeFn = logFile.Close
		}
	}

	if cfg.Stderr {
		handlers = append(handlers, newHandler(stderr, cfg.Format, opts))
	}

	if len(handlers) == 0 {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), closeFn
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeFn
}

// ParseLevel converts a level name to a slog level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newHandler(w io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// openLogFile opens or creates a log file for appending
func openLogFile(path string) (*os.File, error) {
	path, err := config.ExpandPath(path)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory; %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file; %w", err)
	}

	return file, nil
}
