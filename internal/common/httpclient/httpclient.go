package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/DataRockMyWorld/Vehicle-Workshop-App-sub000/internal/common/eventbus"
)

// APIPrefix is the versioned namespace for resource endpoints. Paths starting
// with /auth bypass it.
const APIPrefix = "/api/v1"

const publishTimeout = 100 * time.Millisecond

// TokenPair is the payload returned by the login and refresh endpoints.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

// RequestOptions describes a single API request. Only Path is required;
// Method defaults to GET.
type RequestOptions struct {
	Method      string            // HTTP method, default GET
	Path        string            // endpoint path, e.g. "customers/" or "/auth/login/"
	QueryParams map[string]string // optional query parameters
	Body        []byte            // optional request body
	ContentType string            // overrides the JSON default, e.g. multipart uploads
	Headers     map[string]string // extra headers; cannot override Authorization

	retried bool // set when the request is re-issued after a token refresh
}

// Client implements Interface against a live server.
type Client struct {
	config     Configurator
	tokens     TokenStore
	bus        *eventbus.Bus
	httpClient *http.Client
}

// ClientOptions contains options for configuring the HTTP client.
type ClientOptions struct {
	DisableCertValidation bool          // if true, skips TLS certificate validation
	Timeout               time.Duration // per-request timeout, 0 means no limit
}

// NewClient creates a client over the given configuration, credential store,
// and event bus. The bus receives a logout event when a 401 proves
// unrecoverable.
func NewClient(config Configurator, tokens TokenStore, bus *eventbus.Bus, opts ...ClientOptions) *Client {
	clientOpts := ClientOptions{}
	if len(opts) > 0 {
		clientOpts = opts[0]
	}

	httpClient := &http.Client{Timeout: clientOpts.Timeout}
	if clientOpts.DisableCertValidation {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true,
			},
		}
	}

	return &Client{
		config:     config,
		tokens:     tokens,
		bus:        bus,
		httpClient: httpClient,
	}
}

func isAuthPath(p string) bool {
	return strings.HasPrefix(strings.TrimPrefix(p, "/"), "auth")
}

// buildURL resolves a request path against the server URL. Auth paths are
// mounted at the root; everything else lives under APIPrefix.
func (c *Client) buildURL(opts RequestOptions) (string, error) {
	u, err := url.Parse(c.config.GetServerURL())
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %v", err)
	}

	p := strings.TrimLeft(opts.Path, "/")
	inline := ""
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p, inline = p[:i], p[i+1:]
	}
	if isAuthPath(opts.Path) {
		u.Path = strings.TrimRight(u.Path, "/") + "/" + p
	} else {
		u.Path = strings.TrimRight(u.Path, "/") + APIPrefix + "/" + p
	}

	q, err := url.ParseQuery(inline)
	if err != nil {
		q = url.Values{}
	}
	for k, v := range opts.QueryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Do implements Interface. Non-2xx responses surface as *APIError carrying
// the status code and the raw body. A 401 on a non-auth path triggers exactly
// one refresh-and-retry before the session is declared dead.
func (c *Client) Do(ctx context.Context, opts RequestOptions) ([]byte, error) {
	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}

	target, err := c.buildURL(opts)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, target, bytes.NewReader(opts.Body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	if len(opts.Body) > 0 {
		contentType := opts.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		req.Header.Set("Content-Type", contentType)
	}
	for k, v := range opts.Headers {
		if strings.EqualFold(k, "Authorization") {
			continue
		}
		req.Header.Set(k, v)
	}
	if !isAuthPath(opts.Path) {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	log.Debug().
		Str("method", method).
		Str("path", opts.Path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Msg("api request")

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if resp.StatusCode == http.StatusNoContent || !json.Valid(body) {
			return []byte("{}"), nil
		}
		return body, nil
	}

	if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(opts.Path) && !opts.retried {
		if retryBody, retryErr, retried := c.refreshAndRetry(ctx, opts); retried {
			return retryBody, retryErr
		}
	}

	return nil, newAPIError(resp.StatusCode, body)
}

// refreshAndRetry performs the one-shot silent refresh. On success the new
// tokens are persisted and the original request is re-issued once, flagged as
// retried; its outcome, success or failure, is returned as-is. When the
// refresh itself fails, or no refresh token exists, all session state is
// cleared, a logout event is broadcast, and the caller surfaces the original
// 401.
func (c *Client) refreshAndRetry(ctx context.Context, opts RequestOptions) ([]byte, error, bool) {
	refreshToken := c.tokens.RefreshToken()
	if refreshToken != "" {
		pair, err := c.Refresh(ctx, refreshToken)
		if err == nil {
			if pair.Refresh == "" {
				pair.Refresh = refreshToken
			}
			if err := c.tokens.SetTokens(pair.Access, pair.Refresh); err != nil {
				log.Error().Err(err).Msg("failed to persist refreshed tokens")
			}
			opts.retried = true
			body, err := c.Do(ctx, opts)
			return body, err, true
		}
		log.Debug().Err(err).Msg("token refresh failed")
	}

	if err := c.tokens.Clear(); err != nil {
		log.Error().Err(err).Msg("failed to clear session credentials")
	}
	if c.bus != nil {
		c.bus.Publish(eventbus.TopicLogout, "unauthorized", publishTimeout)
	}
	return nil, nil, false
}

// Download implements Interface. The payload is written to dest atomically:
// nothing is left behind when the request or the write fails.
func (c *Client) Download(ctx context.Context, path string, dest string) error {
	target, err := c.buildURL(RequestOptions{Path: path})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %v", err)
	}
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		detail, _ := json.Marshal(map[string]string{"detail": resp.Status})
		return newAPIError(resp.StatusCode, detail)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write download: %v", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write download: %v", err)
	}
	return os.Rename(tmp.Name(), dest)
}

// Login implements Interface.
func (c *Client) Login(ctx context.Context, email, password string) (TokenPair, error) {
	return c.authPost(ctx, "/auth/login/", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Refresh implements Interface.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	return c.authPost(ctx, "/auth/refresh/", map[string]string{
		"refresh": refreshToken,
	})
}

// Logout implements Interface.
func (c *Client) Logout(ctx context.Context, refreshToken string) {
	if refreshToken == "" {
		return
	}
	body, _ := json.Marshal(map[string]string{"refresh": refreshToken})
	_, err := c.Do(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   "/auth/logout/",
		Body:   body,
	})
	if err != nil {
		log.Debug().Err(err).Msg("server-side logout failed")
	}
}

func (c *Client) authPost(ctx context.Context, path string, payload map[string]string) (TokenPair, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return TokenPair{}, err
	}
	respBody, err := c.Do(ctx, RequestOptions{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
	if err != nil {
		return TokenPair{}, err
	}

	var pair TokenPair
	if err := json.Unmarshal(respBody, &pair); err != nil {
		return TokenPair{}, fmt.Errorf("failed to parse token response: %v", err)
	}
	if pair.Access == "" {
		return TokenPair{}, fmt.Errorf("token response missing access token")
	}
	return pair, nil
}
