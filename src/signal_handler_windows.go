//go:build windows
// +build windows

package main

import (
	"log/slog"
	"os"
)

// handlePlatformSignal is a no-op: Windows has no user signals
func handlePlatformSignal(os.Signal, *slog.LevelVar, *slog.Logger) {}
