package client

import (
	"os"

	"golang.org/x/term"
)

// ColorEnabled decides whether output may be styled.
// Priority: --no-color flag, output.color mode, NO_COLOR, then TTY detection.
func ColorEnabled(mode string, noColorFlag bool, out *os.File) bool {
	if noColorFlag {
		return false
	}

	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	// NO_COLOR: any non-empty value disables colour
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return false
	}
	return os.Getenv("TERM") != "dumb"
}
