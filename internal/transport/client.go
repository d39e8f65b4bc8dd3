// Package transport provides the HTTP client shared by origins and the
// validator: credentials, user agent, JSON decoding and typed API errors.
package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/agentstation/starlist/pkg/constants"
	"github.com/agentstation/starlist/pkg/errors"
	"github.com/agentstation/starlist/pkg/logging"
)

// Client provides HTTP client functionality with authentication.
type Client struct {
	http       *http.Client
	auth       Authenticator
	credential string
	headers    map[string]string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the request timeout (constants.DefaultHTTPTimeout).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHeader sets a header on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithCredential authenticates every request with credential using auth.
// An empty credential sends unauthenticated requests.
func WithCredential(auth Authenticator, credential string) Option {
	return func(c *Client) {
		c.auth = auth
		c.credential = credential
	}
}

// New creates a transport client. Without options requests are
// unauthenticated and time out after constants.DefaultHTTPTimeout.
func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: constants.DefaultHTTPTimeout},
		auth:    &NoAuth{},
		headers: map[string]string{"User-Agent": constants.UserAgent},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewGitHub returns a client for the GitHub REST API. The token may be empty.
func NewGitHub(token string) *Client {
	return New(
		WithCredential(&BearerAuth{}, token),
		WithHeader("Accept", "application/vnd.github+json"),
		WithHeader("X-GitHub-Api-Version", "2022-11-28"),
	)
}

// Authenticated reports whether requests carry a credential.
func (c *Client) Authenticated() bool {
	return c.credential != ""
}

// Do performs an HTTP request with headers and authentication applied.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)
	for k, v := range c.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	if c.credential != "" {
		c.auth.Apply(req, c.credential)
	}

	logging.FromContext(ctx).Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Msg("HTTP request")

	return c.http.Do(req)
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.request(ctx, http.MethodGet, url)
}

// Head performs a HEAD request.
func (c *Client) Head(ctx context.Context, url string) (*http.Response, error) {
	return c.request(ctx, http.MethodHead, url)
}

func (c *Client) request(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", method+" "+url, err)
	}
	return c.Do(ctx, req)
}

// GetJSON performs a GET request and decodes a 200 response into target.
// Any other status is returned as *errors.APIError.
func (c *Client) GetJSON(ctx context.Context, service, url string, target any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return &errors.APIError{Service: service, Endpoint: url, Message: "request failed", Err: err}
	}
	return DecodeResponse(resp, service, target)
}

// DecodeResponse decodes a JSON response into target and closes the body.
func DecodeResponse(resp *http.Response, service string, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("failed to close response body")
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, constants.MaxResponseBytes))
	if err != nil {
		return errors.WrapIO("read", "response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		endpoint := ""
		if resp.Request != nil && resp.Request.URL != nil {
			endpoint = resp.Request.URL.String()
		}
		return &errors.APIError{
			Service:    service,
			StatusCode: resp.StatusCode,
			Endpoint:   endpoint,
			Message:    truncate(string(body), 200),
		}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", "response", err)
	}

	return nil
}

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
