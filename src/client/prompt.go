package client

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Test seams for terminal access
var (
	readPassword    = term.ReadPassword
	stdinIsTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// promptPassword prints label to w and reads a password without echo.
// Without a terminal on stdin it fails with a usage error instead of
// blocking on a pipe.
func promptPassword(w io.Writer, label string) (string, error) {
	if !stdinIsTerminal() {
		return "", NewUsageError(fmt.Sprintf("%s required", label))
	}

	fmt.Fprintf(w, "%s: ", label)
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(pw), nil
}
