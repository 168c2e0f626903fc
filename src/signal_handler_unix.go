//go:build !windows
// +build !windows

package main

import (
	"log/slog"
	"os"
	"syscall"
)

// handlePlatformSignal handles the Unix-only signals
func handlePlatformSignal(sig os.Signal, level *slog.LevelVar, logger *slog.Logger) {
	if sig != syscall.SIGUSR2 {
		return
	}

	if level.Level() == slog.LevelDebug {
		level.Set(slog.LevelInfo)
		logger.Info("debug logging: OFF")
	} else {
		level.Set(slog.LevelDebug)
		logger.Info("debug logging: ON")
	}
}
