package session

import (
	"errors"
	"io"
	"log/slog"
)

// State is the authentication state of the client
type State int

const (
	// Unauthenticated means no token is held
	Unauthenticated State = iota
	// Authenticated means a token is held
	Authenticated
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Authenticated:
		return "AUTHENTICATED"
	default:
		return "UNAUTHENTICATED"
	}
}

// Manager holds the in-memory token and keeps it in step with its Store.
// It is the only writer of the token.
type Manager struct {
	store  Store
	token  string
	logger *slog.Logger
}

// Open creates a manager and loads the persisted token once.
// A missing or unreadable record leaves the manager unauthenticated.
func Open(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	m := &Manager{store: store, logger: logger}

	token, err := store.Load()
	switch {
	case err == nil:
		m.token = token
	case errors.Is(err, ErrNoToken):
		logger.Debug("no persisted session")
	default:
		logger.Debug("ignoring unreadable session record", "error", err)
	}

	return m
}

// Token returns the current token, "" when unauthenticated
func (m *Manager) Token() string {
	return m.token
}

// State returns the current authentication state
func (m *Manager) State() State {
	if m.token == "" {
		return Unauthenticated
	}
	return Authenticated
}

// Authenticated reports whether a token is held
func (m *Manager) Authenticated() bool {
	return m.State() == Authenticated
}

// Begin persists token and makes it current. On a persistence error the
// previous state is kept.
func (m *Manager) Begin(token string) error {
	if err := m.store.Save(token); err != nil {
		return err
	}
	m.token = token
	m.logger.Debug("session started")
	return nil
}

// End removes the persisted token and drops the current one. On a
// persistence error the previous state is kept.
func (m *Manager) End() error {
	if err := m.store.Clear(); err != nil {
		return err
	}
	m.token = ""
	m.logger.Debug("session ended")
	return nil
}
