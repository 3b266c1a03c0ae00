package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/eventbus"
	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/httpclient"
)

// placeholderUser is shown when a session is restored from tokens alone and
// no email was cached.
const placeholderUser = "(signed in)"

// Capabilities are the current user's permission flags. They are only
// trustworthy after the me endpoint has succeeded; until then Defaults apply.
type Capabilities struct {
	CanWrite       bool
	CanSeeAllSites bool
	SiteID         *int64
	IsSuperuser    bool
}

// DefaultCapabilities returns the pre-fetch defaults: deliberately permissive
// for CanWrite so a briefly unavailable me endpoint does not lock users out
// of routine work, restrictive for the elevated scopes.
func DefaultCapabilities() Capabilities {
	return Capabilities{CanWrite: true}
}

// meResponse mirrors the untyped me payload. Pointer fields distinguish
// absent keys from explicit false, which drives the capability defaults.
type meResponse struct {
	CanWrite       *bool  `mapstructure:"can_write"`
	CanSeeAllSites *bool  `mapstructure:"can_see_all_sites"`
	SiteID         *int64 `mapstructure:"site_id"`
	IsSuperuser    *bool  `mapstructure:"is_superuser"`
	Email          string `mapstructure:"email"`
}

// Manager owns the session lifecycle: restore on startup, login, logout, the
// capability flags, and reaction to logout signals from the client or the
// credential watcher. Safe for concurrent use.
type Manager struct {
	client httpclient.Interface
	store  CredentialStore
	bus    *eventbus.Bus

	mu      sync.Mutex
	loading bool
	user    string
	caps    Capabilities

	unsubscribe func()
}

// NewManager wires a manager over the given client, store, and bus. It
// subscribes to the logout topic immediately; call Close to release the
// subscription.
func NewManager(client httpclient.Interface, store CredentialStore, bus *eventbus.Bus) *Manager {
	m := &Manager{
		client:  client,
		store:   store,
		bus:     bus,
		loading: true,
		caps:    DefaultCapabilities(),
	}

	if bus != nil {
		events, unsubscribe := bus.Subscribe(eventbus.TopicLogout, 4)
		m.unsubscribe = unsubscribe
		go func() {
			for range events {
				m.Logout(context.Background())
			}
		}()
	}
	return m
}

// Restore rebuilds the session from persisted credentials. With an access
// token the user is optimistically authenticated before capabilities are
// fetched; with only a refresh token the pair is refreshed first; with
// neither the manager settles unauthenticated.
func (m *Manager) Restore(ctx context.Context) {
	defer m.setLoading(false)

	access := m.store.AccessToken()
	refresh := m.store.RefreshToken()
	if access == "" && refresh == "" {
		return
	}

	if access != "" {
		m.setUser(m.storedEmail())
		m.fetchCapabilities(ctx)
		return
	}

	pair, err := m.client.Refresh(ctx, refresh)
	if err != nil {
		log.Debug().Err(err).Msg("session restore refresh failed")
		m.Logout(ctx)
		return
	}
	if pair.Refresh == "" {
		pair.Refresh = refresh
	}
	if err := m.store.SetTokens(pair.Access, pair.Refresh); err != nil {
		log.Error().Err(err).Msg("failed to persist restored tokens")
	}
	m.setUser(m.storedEmail())
	m.fetchCapabilities(ctx)
}

// Login authenticates against the server, persists the full credential set,
// and fetches capabilities. Errors from the login call are returned untouched
// so callers can render them with httpclient.ErrorMessage.
func (m *Manager) Login(ctx context.Context, email, password string) (httpclient.TokenPair, error) {
	pair, err := m.client.Login(ctx, email, password)
	if err != nil {
		return httpclient.TokenPair{}, err
	}
	if err := m.store.SetSession(pair.Access, pair.Refresh, email); err != nil {
		return httpclient.TokenPair{}, err
	}
	m.setUser(email)
	m.fetchCapabilities(ctx)
	return pair, nil
}

// Logout invalidates the refresh token server-side on a best-effort basis,
// then unconditionally clears local state.
func (m *Manager) Logout(ctx context.Context) {
	if refresh := m.store.RefreshToken(); refresh != "" {
		m.client.Logout(ctx, refresh)
	}
	if err := m.store.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear credentials")
	}

	m.mu.Lock()
	m.user = ""
	m.caps = DefaultCapabilities()
	m.mu.Unlock()
}

// fetchCapabilities loads the me endpoint. A 401 means the session is invalid
// and the user is cleared; any other failure keeps the session but resets
// capabilities to defaults rather than locking the user out over a secondary
// endpoint outage.
func (m *Manager) fetchCapabilities(ctx context.Context) {
	body, err := m.client.Do(ctx, httpclient.RequestOptions{Path: "me/"})
	if err != nil {
		var apiErr *httpclient.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			m.mu.Lock()
			m.user = ""
			m.caps = DefaultCapabilities()
			m.mu.Unlock()
			return
		}
		log.Debug().Err(err).Msg("capability fetch failed, using defaults")
		m.mu.Lock()
		m.caps = DefaultCapabilities()
		m.mu.Unlock()
		return
	}

	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		raw = map[string]any{}
	}
	var me meResponse
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &me,
		WeaklyTypedInput: true,
	})
	if err == nil {
		if decodeErr := decoder.Decode(raw); decodeErr != nil {
			log.Debug().Err(decodeErr).Msg("unexpected me payload")
		}
	}

	caps := Capabilities{
		CanWrite:       me.CanWrite == nil || *me.CanWrite,
		CanSeeAllSites: me.CanSeeAllSites != nil && *me.CanSeeAllSites,
		SiteID:         me.SiteID,
		IsSuperuser:    me.IsSuperuser != nil && *me.IsSuperuser,
	}

	m.mu.Lock()
	m.caps = caps
	if me.Email != "" {
		m.user = me.Email
	}
	m.mu.Unlock()
}

// IsAuthenticated reports whether a user is currently signed in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user != ""
}

// CurrentUser returns the signed-in user's email, or "" when signed out.
func (m *Manager) CurrentUser() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Capabilities returns a snapshot of the current capability flags.
func (m *Manager) Capabilities() Capabilities {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.caps
}

// Loading reports whether the initial restore is still in progress.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Close releases the bus subscription.
func (m *Manager) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Manager) storedEmail() string {
	if email := m.store.Email(); email != "" {
		return email
	}
	return placeholderUser
}

func (m *Manager) setUser(email string) {
	m.mu.Lock()
	m.user = email
	m.mu.Unlock()
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}
