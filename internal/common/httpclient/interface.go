// Package httpclient is the single chokepoint for all calls to the workshop
// REST API. It attaches bearer credentials, normalizes response and error
// shapes, and performs a one-shot silent token refresh when a request fails
// with 401. The package requires a Configurator for server details and a
// TokenStore for the persisted session credentials.
package httpclient

import "context"

// Interface is the client contract consumed by the service layer and the
// session manager. Implementations must handle authentication, request
// building, and response processing.
type Interface interface {
	// Do makes an HTTP request with the given options and returns the
	// response body. Bodies of successful responses are always valid JSON:
	// 204 and malformed bodies degrade to "{}".
	Do(ctx context.Context, opts RequestOptions) ([]byte, error)

	// Download performs an authenticated GET for a binary payload and writes
	// it to the file at dest.
	Download(ctx context.Context, path string, dest string) error

	// Login exchanges credentials for a token pair. The call is
	// unauthenticated and never triggers a refresh.
	Login(ctx context.Context, email, password string) (TokenPair, error)

	// Refresh exchanges a refresh token for a new token pair.
	Refresh(ctx context.Context, refreshToken string) (TokenPair, error)

	// Logout asks the server to blacklist the refresh token. Best effort:
	// failures are swallowed because local session clearing must proceed
	// regardless.
	Logout(ctx context.Context, refreshToken string)
}

// TokenStore is the persisted session credential source shared between the
// client and the session manager. Implementations must keep in-memory state
// and durable storage in sync on every write.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	// SetTokens persists a new token pair as a unit.
	SetTokens(access, refresh string) error
	// Clear removes all persisted credentials.
	Clear() error
}

// Configurator provides server connection details.
type Configurator interface {
	GetServerURL() string
}
