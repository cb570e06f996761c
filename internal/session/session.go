package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/leadscope/mcpgram/internal/instagram"
)

// Authenticator is the slice of the provider client the session manager needs.
type Authenticator interface {
	Authenticate(ctx context.Context, creds instagram.Credentials, deviceID string) error
}

// Manager owns the process-wide provider session. Login happens lazily on the
// first operation and again after Invalidate; a successful login is cached
// until a remote call reports an auth-invalidation failure. Concurrent login
// attempts collapse into one in-flight call via singleflight.
type Manager struct {
	client   Authenticator
	creds    instagram.Credentials
	deviceID string

	mu     sync.RWMutex
	authed bool

	login singleflight.Group
}

// NewManager constructs a Manager for the configured principal. The device
// identity is derived deterministically from the username so the provider
// sees the same device across restarts.
func NewManager(client Authenticator, creds instagram.Credentials) *Manager {
	return &Manager{
		client:   client,
		creds:    creds,
		deviceID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("mcpgram:device:"+creds.Username)).String(),
	}
}

// EnsureAuthenticated logs in when the session is not valid and is a no-op
// otherwise. The underlying error is returned unwrapped; retry policy belongs
// to the caller. A second concurrent caller awaits the in-flight login rather
// than starting its own.
func (m *Manager) EnsureAuthenticated(ctx context.Context) error {
	m.mu.RLock()
	authed := m.authed
	m.mu.RUnlock()
	if authed {
		return nil
	}

	_, err, _ := m.login.Do("login", func() (any, error) {
		// Re-check: another caller may have completed login before we
		// entered the flight.
		m.mu.RLock()
		done := m.authed
		m.mu.RUnlock()
		if done {
			return nil, nil
		}

		zerolog.Ctx(ctx).Info().
			Str("username", m.creds.Username).
			Str("device_id", m.deviceID).
			Msg("session: authenticating")

		if err := m.client.Authenticate(ctx, m.creds, m.deviceID); err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.authed = true
		m.mu.Unlock()
		return nil, nil
	})
	return err
}

// Invalidate forces the next operation to re-authenticate. Callers invoke it
// after observing an auth-invalidation class of remote failure.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.authed = false
	m.mu.Unlock()
}

// Authenticated reports the cached session validity.
func (m *Manager) Authenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authed
}

// DeviceID exposes the stable device identity for telemetry.
func (m *Manager) DeviceID() string {
	return m.deviceID
}
