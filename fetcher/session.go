package fetcher

import (
	"log/slog"
	"sync"
)

// SessionManager owns the process-wide remote browser session. The
// session is established lazily on first Acquire and reused across
// requests. When connecting fails the reference stays nil, so the next
// request retries from scratch; a session lost mid-request is never
// recreated on the spot.
type SessionManager struct {
	mu         sync.Mutex
	controlURL string
	session    Session
	connect    func(controlURL string) (Session, error)
}

// NewSessionManager creates a manager that connects to the given
// control URL (a credential-bearing WebSocket address) on first use.
func NewSessionManager(controlURL string) *SessionManager {
	return &SessionManager{
		controlURL: controlURL,
		connect:    connectRemote,
	}
}

// Acquire returns the live session, establishing it if necessary.
func (m *SessionManager) Acquire() (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		return m.session, nil
	}

	slog.Info("connecting to remote browser")
	s, err := m.connect(m.controlURL)
	if err != nil {
		return nil, err
	}
	m.session = s
	slog.Info("remote browser session established")
	return s, nil
}

// Connected reports whether a live session currently exists.
func (m *SessionManager) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session != nil
}

// Close tears down the session if one exists. Called on process
// shutdown.
func (m *SessionManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session == nil {
		return
	}
	if err := m.session.Close(); err != nil {
		slog.Warn("failed to close remote browser session", "error", err)
	}
	m.session = nil
}
