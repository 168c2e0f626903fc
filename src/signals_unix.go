//go:build !windows
// +build !windows

package main

import (
	"syscall"
)

var platformSignals = []syscall.Signal{
	syscall.SIGUSR2, // Toggle debug logging
}
