// Package logger configures the process-wide slog logger.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/dragonsrealm/config"
)

// Special values of config.LogConfig.File.
const (
	FileStderr  = "-"
	FileDiscard = "none"
	// DefaultFileName is used inside defaultDir when no file is configured.
	DefaultFileName = "dragonsrealm.log"
)

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// Setup builds a logger from cfg, installs it as the slog default and
// returns it with a close function for the underlying file. defaultDir is
// where the log file goes when cfg.File is empty.
func Setup(cfg config.LogConfig, defaultDir, version string) (*slog.Logger, func() error, error) {
	w, closeFn, err := openOutput(cfg.File, defaultDir)
	if err != nil {
		return nil, nil, err
	}
	logger := New(w, cfg.Level, cfg.Format).With("app", "dragonsrealm", "version", version)
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// New returns a text or JSON logger writing to w.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openOutput(file, defaultDir string) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch file {
	case FileStderr:
		return os.Stderr, noop, nil
	case FileDiscard:
		return io.Discard, noop, nil
	case "":
		file = filepath.Join(defaultDir, DefaultFileName)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return f, f.Close, nil
}
