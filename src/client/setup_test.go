package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

func press(m setupModel, key tea.KeyMsg) setupModel {
	next, _ := m.Update(key)
	return next.(setupModel)
}

func TestSetupModelBackspaceMultibyte(t *testing.T) {
	m := newSetupModel(context.Background(), "http://münchen.example/ü")

	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.serverURL != "http://münchen.example/" {
		t.Errorf("Expected the whole rune removed, got %q", m.serverURL)
	}
	if !utf8.ValidString(m.serverURL) {
		t.Errorf("Expected valid UTF-8, got %q", m.serverURL)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("日本")})
	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.serverURL != "http://münchen.example/日" {
		t.Errorf("Expected one rune dropped, got %q", m.serverURL)
	}
}

func TestSetupModelEditing(t *testing.T) {
	m := newSetupModel(context.Background(), "http://host")

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":3005")})
	if m.serverURL != "http://host:3005" {
		t.Errorf("Expected typed runes appended, got %q", m.serverURL)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyBackspace})
	if m.serverURL != "http://host:300" {
		t.Errorf("Expected backspace to drop a rune, got %q", m.serverURL)
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focusedField != fieldSave {
		t.Errorf("Expected focus on save, got %d", m.focusedField)
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.saveToConfig {
		t.Error("Expected enter to toggle save off")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.serverURL != "http://host:300" {
		t.Error("Typing outside the URL field must not change it")
	}

	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focusedField != fieldTest {
		t.Errorf("Expected focus to wrap to test, got %d", m.focusedField)
	}

	if !strings.Contains(m.View(), "WEATHER CLI SETUP") {
		t.Error("Expected title in view")
	}
}

func TestSetupModelCheckResult(t *testing.T) {
	m := newSetupModel(context.Background(), "http://host")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(setupModel)
	if !m.testing || cmd == nil {
		t.Fatal("Expected enter on the URL field to start a connection check")
	}

	next, _ = m.Update(checkMsg{result: "Connection failed: refused"})
	m = next.(setupModel)
	if m.testing || m.done || m.testSuccess {
		t.Errorf("Unexpected state after failed check: %+v", m)
	}

	next, cmd = m.Update(checkMsg{success: true, result: "Connected"})
	m = next.(setupModel)
	if !m.done || cmd == nil {
		t.Error("Expected a successful check to finish the wizard")
	}
}

func TestSetupModelCancel(t *testing.T) {
	m := newSetupModel(context.Background(), "")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(setupModel).cancelled || cmd == nil {
		t.Error("Expected esc to cancel")
	}
}

func TestNormalizeServerURL(t *testing.T) {
	tests := map[string]string{
		"localhost:3005":         "http://localhost:3005",
		" https://api.example/ ": "https://api.example",
		"http://host":            "http://host",
	}
	for in, want := range tests {
		if got := normalizeServerURL(in); got != want {
			t.Errorf("normalizeServerURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCheckServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())

	msg := checkServer(context.Background(), srv.URL)().(checkMsg)
	if !msg.success || !strings.Contains(msg.result, "HTTP 404") {
		t.Errorf("Expected any HTTP answer to pass, got %+v", msg)
	}

	srv.Close()
	msg = checkServer(context.Background(), srv.URL)().(checkMsg)
	if msg.success || !strings.HasPrefix(msg.result, "Connection failed") {
		t.Errorf("Expected failure against a closed server, got %+v", msg)
	}
}

func TestSetupRequiresTerminal(t *testing.T) {
	h := newCLIHarness(t)
	stubTerminal(t, false, "", nil)

	_, _, err := h.run("setup")
	if err == nil || err.Code != ExitUsageError {
		t.Fatalf("Expected usage error without a terminal, got %+v", err)
	}
}
