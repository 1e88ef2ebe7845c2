// Package session owns the console's single live operator session. All reads
// go through the manager; login and logout are the only mutations.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"sakan/console/internal/normalize"
	"sakan/console/internal/upstream"
)

// Store persists the credential pair across restarts.
type Store interface {
	LoadCredentials(ctx context.Context) ([]byte, string, error)
	SaveCredentials(ctx context.Context, identity []byte, token string) error
	ClearCredentials(ctx context.Context) error
}

// Authenticator performs the remote login call and returns the raw response.
type Authenticator interface {
	Login(ctx context.Context, username, password string) ([]byte, error)
}

// Result is what login reports back to the caller. Failures carry a
// human-readable message; nothing in this path panics past the manager.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

const (
	msgTransportFailure = "could not reach the housing service"
	msgNoCredential     = "no credential received from the server"
)

// Manager holds the one live Session, or none.
type Manager struct {
	mu      sync.RWMutex
	store   Store
	auth    Authenticator
	current *normalize.Identity
	token   string
	loading bool
}

func NewManager(store Store, auth Authenticator) *Manager {
	return &Manager{
		store:   store,
		auth:    auth,
		loading: true,
	}
}

// Restore adopts a persisted session without contacting the housing service.
// The pair is trusted only when both halves are present and the identity
// parses; anything else is discarded silently and the console starts signed
// out. Restore never fails the startup path.
func (m *Manager) Restore(ctx context.Context) {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	identityRaw, token, err := m.store.LoadCredentials(ctx)
	if err != nil {
		log.Printf("WARNING: could not read persisted session: %v", err)
		return
	}
	if len(identityRaw) == 0 || token == "" {
		if len(identityRaw) != 0 || token != "" {
			m.discardPersisted(ctx)
		}
		return
	}

	var identity normalize.Identity
	if err := json.Unmarshal(identityRaw, &identity); err != nil {
		m.discardPersisted(ctx)
		return
	}

	m.mu.Lock()
	m.current = &identity
	m.token = token
	m.mu.Unlock()
}

// Login performs exactly one remote authentication call. Transport and
// protocol failures come back as failure results, never as panics. A 200
// response without a token anywhere is still a failure.
func (m *Manager) Login(ctx context.Context, username, password string) Result {
	raw, err := m.auth.Login(ctx, username, password)
	if err != nil {
		if upstream.IsTransport(err) {
			return Result{Error: msgTransportFailure}
		}
		var pe *upstream.ProtocolError
		if errors.As(err, &pe) {
			return Result{Error: pe.Message}
		}
		return Result{Error: err.Error()}
	}

	identity, token, ok := normalize.LoginPayload(raw, username)
	if !ok {
		return Result{Error: msgNoCredential}
	}

	identityJSON, err := json.Marshal(identity)
	if err != nil {
		return Result{Error: err.Error()}
	}
	if err := m.store.SaveCredentials(ctx, identityJSON, token); err != nil {
		// The operator did authenticate; the session just will not survive a
		// restart.
		log.Printf("WARNING: could not persist session: %v", err)
	}

	m.mu.Lock()
	m.current = &identity
	m.token = token
	m.mu.Unlock()

	return Result{OK: true}
}

// Logout clears the live session and every persisted copy. Calling it with no
// live session is a no-op; no later call can carry the old token either way.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.current = nil
	m.token = ""
	m.mu.Unlock()

	return m.store.ClearCredentials(ctx)
}

// Current returns the live identity, if any.
func (m *Manager) Current() (normalize.Identity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return normalize.Identity{}, false
	}
	return *m.current, true
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil
}

// IsLoading is true only while Restore has not yet completed.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

// Token implements upstream.TokenSource.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

func (m *Manager) discardPersisted(ctx context.Context) {
	if err := m.store.ClearCredentials(ctx); err != nil {
		log.Printf("WARNING: could not discard persisted session: %v", err)
	}
}
