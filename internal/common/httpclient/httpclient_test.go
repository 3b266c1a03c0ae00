package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/eventbus"
)

type staticConfig struct {
	url string
}

func (c *staticConfig) GetServerURL() string { return c.url }

// memStore is an in-memory TokenStore for tests.
type memStore struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared bool
}

func (s *memStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.access
}

func (s *memStore) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refresh
}

func (s *memStore) SetTokens(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
	return nil
}

func (s *memStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	s.cleared = true
	return nil
}

func (s *memStore) wasCleared() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cleared
}

func newTestClient(t *testing.T, handler http.HandlerFunc, store *memStore) (*Client, *eventbus.Bus) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	bus := eventbus.New()
	t.Cleanup(bus.Shutdown)
	return NewClient(&staticConfig{url: server.URL}, store, bus), bus
}

func TestDoRoutesAndAuth(t *testing.T) {
	store := &memStore{access: "tok-123"}
	var gotPath, gotAuth, gotContentType string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{"ok":true}`))
	}, store)

	body, err := client.Do(context.Background(), RequestOptions{
		Method: http.MethodPost,
		Path:   "customers/",
		Body:   []byte(`{"first_name":"Ada"}`),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, "/api/v1/customers/", gotPath)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestDoAuthPathBypassesPrefix(t *testing.T) {
	store := &memStore{access: "tok-123"}
	var gotPath, gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"access":"a","refresh":"r"}`))
	}, store)

	_, err := client.Login(context.Background(), "ops@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "/auth/login/", gotPath)
	assert.Empty(t, gotAuth, "auth endpoints must not carry a bearer token")
}

func TestDoCallerHeadersCannotOverrideAuth(t *testing.T) {
	store := &memStore{access: "tok-123"}
	var gotAuth, gotAccept string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	}, store)

	_, err := client.Do(context.Background(), RequestOptions{
		Path: "customers/",
		Headers: map[string]string{
			"Authorization": "Bearer forged",
			"Accept":        "application/json",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "application/json", gotAccept)
}

func TestDoTolerantBodies(t *testing.T) {
	store := &memStore{access: "tok"}
	responses := []func(w http.ResponseWriter){
		func(w http.ResponseWriter) { w.WriteHeader(http.StatusNoContent) },
		func(w http.ResponseWriter) { w.Write([]byte("<html>not json</html>")) },
		func(w http.ResponseWriter) {},
	}
	i := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		responses[i](w)
		i++
	}, store)

	for range responses {
		body, err := client.Do(context.Background(), RequestOptions{Path: "customers/"})
		require.NoError(t, err)
		assert.Equal(t, "{}", string(body))
	}
}

func TestDoRefreshOnceAndRetry(t *testing.T) {
	store := &memStore{access: "stale", refresh: "refresh-1"}
	var mu sync.Mutex
	refreshCalls := 0
	resourceCalls := 0
	var authHeaders []string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		switch r.URL.Path {
		case "/auth/refresh/":
			refreshCalls++
			w.Write([]byte(`{"access":"fresh","refresh":"refresh-2"}`))
		case "/api/v1/customers/":
			resourceCalls++
			authHeaders = append(authHeaders, r.Header.Get("Authorization"))
			if r.Header.Get("Authorization") == "Bearer stale" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
				return
			}
			w.Write([]byte(`[{"id":1}]`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}, store)

	body, err := client.Do(context.Background(), RequestOptions{Path: "customers/"})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1}]`, string(body))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, refreshCalls, "exactly one refresh attempt")
	assert.Equal(t, 2, resourceCalls, "original request re-issued once")
	assert.Equal(t, []string{"Bearer stale", "Bearer fresh"}, authHeaders)
	assert.Equal(t, "fresh", store.AccessToken())
	assert.Equal(t, "refresh-2", store.RefreshToken())
}

func TestDoRefreshFailureClearsSession(t *testing.T) {
	store := &memStore{access: "stale", refresh: "dead"}
	client, bus := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh/":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Token is invalid or expired"}`))
		default:
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
		}
	}, store)

	events, unsubscribe := bus.Subscribe(eventbus.TopicLogout, 1)
	defer unsubscribe()

	_, err := client.Do(context.Background(), RequestOptions{Path: "customers/"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.True(t, store.wasCleared())
	assert.Empty(t, store.AccessToken())

	select {
	case event := <-events:
		assert.Equal(t, eventbus.TopicLogout, event.Topic)
	case <-time.After(time.Second):
		t.Error("expected logout event after failed refresh")
	}
}

func TestDoNoRefreshTokenClearsSession(t *testing.T) {
	store := &memStore{access: "stale"}
	refreshCalls := 0
	client, bus := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh/" {
			refreshCalls++
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{}`))
	}, store)

	events, unsubscribe := bus.Subscribe(eventbus.TopicLogout, 1)
	defer unsubscribe()

	_, err := client.Do(context.Background(), RequestOptions{Path: "customers/"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, refreshCalls, "no refresh without a refresh token")
	assert.True(t, store.wasCleared())

	select {
	case <-events:
	case <-time.After(time.Second):
		t.Error("expected logout event")
	}
}

func TestDoRetriedRequestNeverRefreshesTwice(t *testing.T) {
	store := &memStore{access: "stale", refresh: "refresh-1"}
	var mu sync.Mutex
	refreshCalls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if r.URL.Path == "/auth/refresh/" {
			refreshCalls++
			w.Write([]byte(`{"access":"fresh"}`))
			return
		}
		// Even the retried request is rejected.
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{}`))
	}, store)

	_, err := client.Do(context.Background(), RequestOptions{Path: "customers/"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, refreshCalls, "a retried request must not trigger another refresh")
	// The refresh succeeded, so the rotated pair stays; only the retry failed.
	assert.Equal(t, "fresh", store.AccessToken())
	assert.Equal(t, "refresh-1", store.RefreshToken(), "old refresh token kept when rotation omits one")
}

func TestDoAuthPathNeverRefreshes(t *testing.T) {
	store := &memStore{access: "stale", refresh: "refresh-1"}
	refreshCalls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/refresh/" {
			refreshCalls++
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
	}, store)

	_, err := client.Login(context.Background(), "ops@example.com", "wrong")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, refreshCalls)
	assert.False(t, store.wasCleared(), "failed login must not clear an existing session")
}

func TestDoErrorCarriesFieldErrors(t *testing.T) {
	store := &memStore{access: "tok"}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"phone":["Enter a valid phone number."],"email":["This field is required."]}`))
	}, store)

	_, err := client.Do(context.Background(), RequestOptions{Path: "customers/", Method: http.MethodPost, Body: []byte(`{}`)})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	fields := apiErr.FieldErrors()
	assert.Equal(t, "Enter a valid phone number.", fields["phone"])
	assert.Equal(t, "This field is required.", fields["email"])
}

func TestDownload(t *testing.T) {
	store := &memStore{access: "tok"}
	payload := []byte("%PDF-1.7 test")
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/invoices/7/pdf/", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write(payload)
	}, store)

	dest := filepath.Join(t.TempDir(), "invoice-7.pdf")
	require.NoError(t, client.Download(context.Background(), "invoices/7/pdf/", dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDownloadFailure(t *testing.T) {
	store := &memStore{access: "tok"}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, store)

	dest := filepath.Join(t.TempDir(), "export.csv")
	err := client.Download(context.Background(), "dashboard/export/", dest)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.NotEmpty(t, apiErr.Detail())
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "no partial file on failed download")
}

func TestLogoutIsBestEffort(t *testing.T) {
	store := &memStore{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, store)

	// Must not panic or surface the failure.
	client.Logout(context.Background(), "some-refresh")

	// Unreachable server is swallowed too.
	dead := NewClient(&staticConfig{url: "http://127.0.0.1:1"}, store, nil)
	dead.Logout(context.Background(), "some-refresh")
}
