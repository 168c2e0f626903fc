package client

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

var errBadLevel = errors.New("logging.level must be debug, info, warn, or error")

// parseLevel maps a config level name to a slog level
func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, errBadLevel
	}
}

// newLogger builds the process logger. Records go to stderr, or to
// logging.file when set ("default" selects CLILogFile). Debug mode forces the debug level. The returned
// closer releases the log file and is never nil.
func newLogger(config *CLIConfig, stderr io.Writer) (*slog.Logger, io.Closer, error) {
	level, err := parseLevel(config.Logging.Level)
	if err != nil {
		return nil, nil, NewConfigError(err.Error())
	}
	if config.Debug {
		level = slog.LevelDebug
	}

	out := stderr
	var closer io.Closer = nopCloser{}
	if path := config.LogFile(); path != "" {
		if err := EnsureFile(path); err != nil {
			return nil, nil, NewConfigError(fmt.Sprintf("failed to create log directory: %v", err))
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, NewConfigError(fmt.Sprintf("failed to open log file: %v", err))
		}
		out, closer = f, f
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("app", "weather-cli"), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
