package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// TestClient is an in-memory Interface implementation for tests. Responses
// are served by a caller-provided handler and every call is recorded so tests
// can assert on request counts and shapes without a network.
type TestClient struct {
	// Handler serves Do calls. When nil, every call returns "{}".
	Handler func(opts RequestOptions) ([]byte, error)
	// LoginFunc serves Login calls. When nil, login succeeds with fixed tokens.
	LoginFunc func(email, password string) (TokenPair, error)
	// RefreshFunc serves Refresh calls. When nil, refresh fails.
	RefreshFunc func(refreshToken string) (TokenPair, error)

	mu       sync.Mutex
	calls    []RequestOptions
	logouts  []string
	download []string
}

var _ Interface = (*TestClient)(nil)

// Do implements Interface.
func (c *TestClient) Do(_ context.Context, opts RequestOptions) ([]byte, error) {
	c.mu.Lock()
	c.calls = append(c.calls, opts)
	c.mu.Unlock()

	if c.Handler == nil {
		return []byte("{}"), nil
	}
	return c.Handler(opts)
}

// Download implements Interface by writing a fixed payload to dest.
func (c *TestClient) Download(_ context.Context, path string, dest string) error {
	c.mu.Lock()
	c.download = append(c.download, path)
	c.mu.Unlock()
	return os.WriteFile(dest, []byte("test-download"), 0o644)
}

// Login implements Interface.
func (c *TestClient) Login(_ context.Context, email, password string) (TokenPair, error) {
	if c.LoginFunc != nil {
		return c.LoginFunc(email, password)
	}
	return TokenPair{Access: "test-access", Refresh: "test-refresh"}, nil
}

// Refresh implements Interface.
func (c *TestClient) Refresh(_ context.Context, refreshToken string) (TokenPair, error) {
	if c.RefreshFunc != nil {
		return c.RefreshFunc(refreshToken)
	}
	return TokenPair{}, newAPIError(401, []byte(`{"detail":"Token is invalid or expired"}`))
}

// Logout implements Interface.
func (c *TestClient) Logout(_ context.Context, refreshToken string) {
	c.mu.Lock()
	c.logouts = append(c.logouts, refreshToken)
	c.mu.Unlock()
}

// Calls returns a copy of all recorded Do requests.
func (c *TestClient) Calls() []RequestOptions {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]RequestOptions, len(c.calls))
	copy(out, c.calls)
	return out
}

// CallCount returns how many Do requests hit the given path.
func (c *TestClient) CallCount(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.calls {
		if call.Path == path {
			n++
		}
	}
	return n
}

// Logouts returns the refresh tokens passed to Logout.
func (c *TestClient) Logouts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.logouts))
	copy(out, c.logouts)
	return out
}

// RespondJSON is a convenience for handlers that reply with a marshaled value.
func RespondJSON(v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal test response: %v", err)
	}
	return body, nil
}
