// ABOUTME: In-memory registry of open admin sessions keyed by token id
// ABOUTME: Sessions live only as long as the process; logout and restart both end them

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultLifetime bounds how long one login stays valid.
const DefaultLifetime = 12 * time.Hour

// Manager opens, checks, and closes admin sessions.
type Manager struct {
	signer   *Signer
	source   PasswordSource
	lifetime time.Duration
	logger   *slog.Logger

	mu     sync.Mutex
	active map[string]*openSession
}

// openSession is one logged-in browser: its gate and when it lapses.
type openSession struct {
	gate    Gate
	expires time.Time
}

// NewManager creates a manager that checks logins against src.
func NewManager(signer *Signer, src PasswordSource, lifetime time.Duration) *Manager {
	if lifetime <= 0 {
		lifetime = DefaultLifetime
	}
	return &Manager{
		signer:   signer,
		source:   src,
		lifetime: lifetime,
		logger:   slog.Default().With("component", "session"),
		active:   make(map[string]*openSession),
	}
}

// Login checks attempt and, on success, returns a signed token for the new session.
func (m *Manager) Login(ctx context.Context, attempt string) (string, error) {
	current, err := m.source.AdminPassword(ctx)
	if err != nil {
		return "", fmt.Errorf("loading admin password: %w", err)
	}

	sess := &openSession{expires: time.Now().Add(m.lifetime)}
	if err := sess.gate.Login(attempt, current); err != nil {
		m.logger.Warn("admin login rejected")
		return "", err
	}

	id := uuid.NewString()
	token, err := m.signer.Generate(id, m.lifetime)
	if err != nil {
		return "", fmt.Errorf("signing session: %w", err)
	}

	m.mu.Lock()
	m.active[id] = sess
	m.mu.Unlock()

	m.logger.Info("admin logged in", "session", id, "open_sessions", m.Count())
	return token, nil
}

// Gate returns a copy of the gate behind token. Unknown, forged, and lapsed
// tokens yield the zero (unauthenticated) gate.
func (m *Manager) Gate(token string) Gate {
	if token == "" {
		return Gate{}
	}
	id, err := m.signer.Verify(token)
	if err != nil {
		return Gate{}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.active[id]
	if !ok {
		return Gate{}
	}
	if time.Now().After(sess.expires) {
		sess.gate.Logout()
		delete(m.active, id)
		return Gate{}
	}
	return sess.gate
}

// Valid reports whether token belongs to an open session.
func (m *Manager) Valid(token string) bool {
	g := m.Gate(token)
	return g.Authenticated()
}

// Logout closes the session behind token. Unknown tokens are ignored.
func (m *Manager) Logout(token string) {
	id, err := m.signer.Verify(token)
	if err != nil {
		return
	}
	m.mu.Lock()
	sess, ok := m.active[id]
	if ok {
		sess.gate.Logout()
		delete(m.active, id)
	}
	m.mu.Unlock()
	if ok {
		m.logger.Info("admin logged out", "session", id, "open_sessions", m.Count())
	}
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}
