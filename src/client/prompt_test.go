package client

import (
	"bytes"
	"errors"
	"testing"
)

func stubTerminal(t *testing.T, isTTY bool, password string, readErr error) {
	t.Helper()

	origTTY, origRead := stdinIsTerminal, readPassword
	stdinIsTerminal = func() bool { return isTTY }
	readPassword = func(int) ([]byte, error) { return []byte(password), readErr }
	t.Cleanup(func() {
		stdinIsTerminal, readPassword = origTTY, origRead
	})
}

func TestPromptPassword(t *testing.T) {
	stubTerminal(t, true, "hunter2", nil)

	var buf bytes.Buffer
	pw, err := promptPassword(&buf, "Password")
	if err != nil {
		t.Fatalf("promptPassword() failed: %v", err)
	}
	if pw != "hunter2" {
		t.Errorf("Expected hunter2, got %q", pw)
	}
	if buf.String() != "Password: \n" {
		t.Errorf("Expected prompt on writer, got %q", buf.String())
	}
}

func TestPromptPasswordReadError(t *testing.T) {
	stubTerminal(t, true, "", errors.New("eof"))

	var buf bytes.Buffer
	if _, err := promptPassword(&buf, "Password"); err == nil {
		t.Fatal("Expected read error")
	}
}

func TestPromptPasswordWithoutTerminal(t *testing.T) {
	stubTerminal(t, false, "unused", nil)

	var buf bytes.Buffer
	_, err := promptPassword(&buf, "Password")
	exitErr, ok := err.(*ExitError)
	if !ok {
		t.Fatalf("Expected *ExitError, got %T", err)
	}
	if exitErr.Code != ExitUsageError {
		t.Errorf("Expected usage error, got %d", exitErr.Code)
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no prompt without a terminal, got %q", buf.String())
	}
}

func TestCLIPromptsForPassword(t *testing.T) {
	h := newCLIHarness(t)
	stubTerminal(t, true, "typed-secret", nil)

	h.mustRun("register", "carol")

	_, stderr, err := h.run("login", "carol")
	if err != nil {
		t.Fatalf("login with prompted password failed: %v", err)
	}
	if stderr != "Password: \n" {
		t.Errorf("Expected prompt on stderr, got %q", stderr)
	}
}
