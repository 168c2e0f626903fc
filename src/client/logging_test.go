package client

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"":        slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := parseLevel(in)
		if err != nil {
			t.Errorf("parseLevel(%q) failed: %v", in, err)
		}
		if got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := parseLevel("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	config := DefaultConfig()

	var buf bytes.Buffer
	logger, closer, err := newLogger(config, &buf)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	defer closer.Close()

	logger.Info("hidden")
	logger.Warn("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("info should be filtered at the default level")
	}
	if !strings.Contains(buf.String(), "shown") || !strings.Contains(buf.String(), "app=weather-cli") {
		t.Errorf("unexpected log output: %q", buf.String())
	}

	config.Debug = true
	buf.Reset()
	logger, _, err = newLogger(config, &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Debug("details")
	if !strings.Contains(buf.String(), "details") {
		t.Error("debug mode should log debug records")
	}
}

func TestNewLoggerFile(t *testing.T) {
	config := DefaultConfig()
	config.Logging.Level = "info"
	config.Logging.File = filepath.Join(t.TempDir(), "log", "cli.log")

	var stderr bytes.Buffer
	logger, closer, err := newLogger(config, &stderr)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	logger.Info("to file")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(config.Logging.File)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("unexpected log file content: %q", data)
	}
	if stderr.Len() != 0 {
		t.Errorf("nothing should reach stderr, got %q", stderr.String())
	}
}

func TestNewLoggerBadLevel(t *testing.T) {
	config := DefaultConfig()
	config.Logging.Level = "loud"

	var buf bytes.Buffer
	_, _, err := newLogger(config, &buf)
	exitErr, ok := err.(*ExitError)
	if !ok || exitErr.Code != ExitConfigError {
		t.Fatalf("Expected config error, got %v", err)
	}
}

func TestNewLoggerDefaultFile(t *testing.T) {
	isolateHome(t)
	config := DefaultConfig()
	config.Logging.Level = "info"
	config.Logging.File = "default"

	if config.LogFile() != CLILogFile() {
		t.Fatalf("Expected %s, got %s", CLILogFile(), config.LogFile())
	}
	if !strings.HasPrefix(CLILogFile(), CLILogDir()) {
		t.Errorf("Expected log file under %s, got %s", CLILogDir(), CLILogFile())
	}

	var stderr bytes.Buffer
	logger, closer, err := newLogger(config, &stderr)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	logger.Info("to default file")
	if err := closer.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(CLILogFile())
	if err != nil {
		t.Fatalf("default log file not written: %v", err)
	}
	if !strings.Contains(string(data), "to default file") {
		t.Errorf("unexpected log file content: %q", data)
	}
	if stderr.Len() != 0 {
		t.Errorf("Expected nothing on stderr, got %q", stderr.String())
	}
}
