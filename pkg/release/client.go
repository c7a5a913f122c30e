package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/glorpus-work/modlayer/internal/logger"
	"github.com/glorpus-work/modlayer/pkg/auth"
	"github.com/glorpus-work/modlayer/pkg/errors"
)

const (
	// DefaultAPIHost is the only host the auth token is sent to by default.
	DefaultAPIHost = "api.github.com"

	// maxJSONResponseBytes bounds the size of a decoded feed document.
	maxJSONResponseBytes = 10 << 20
)

// RateLimitError is returned when the feed host reports an exhausted quota.
type RateLimitError struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Error formats the rate limit details.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("release feed rate limit exceeded (%d remaining, resets at %s)",
		e.Remaining, e.ResetAt.UTC().Format("15:04 UTC"))
}

// Client queries release feeds over HTTP.
type Client struct {
	httpClient *http.Client
	userAgent  string
	token      string
	apiHost    string
	auth       auth.Authenticator
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithToken sets a bearer token sent only to the API host.
func WithToken(token string) ClientOption {
	return func(cl *Client) {
		cl.token = token
	}
}

// WithAuth sets the authenticator applied to every feed request. It takes
// precedence over WithToken.
func WithAuth(a auth.Authenticator) ClientOption {
	return func(cl *Client) {
		cl.auth = a
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

// WithAPIHost changes the host trusted with the token, for test servers and
// self-hosted mirrors.
func WithAPIHost(host string) ClientOption {
	return func(cl *Client) {
		cl.apiHost = host
	}
}

// NewClient creates a feed client.
func NewClient(timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "modlayer/1.0",
		apiHost:    DefaultAPIHost,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.auth == nil && c.token != "" {
		c.auth = auth.ForHost(c.apiHost, auth.BearerAuth{Token: c.token})
	}
	return c
}

// Latest fetches and decodes the release document at feedURL. A 404 is
// reported as ErrReleaseNotFound.
func (c *Client) Latest(ctx context.Context, feedURL string) (*Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "creating feed request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.auth != nil {
		if err := c.auth.Apply(req); err != nil {
			return nil, errors.Wrap(err, "applying feed credentials")
		}
	}

	logger.Debug("Fetching release feed", logger.Fields{"url": redactURL(feedURL)})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetching release feed %s", redactURL(feedURL))
	}
	defer func() { _ = resp.Body.Close() }()

	if err := checkRateLimit(resp); err != nil {
		return nil, err
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("feed %s returned 404: %w", redactURL(feedURL), errors.ErrReleaseNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetching release feed %s: unexpected status %d", redactURL(feedURL), resp.StatusCode)
	}

	var rel Release
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxJSONResponseBytes)).Decode(&rel); err != nil {
		return nil, errors.Wrapf(err, "decoding release feed %s", redactURL(feedURL))
	}
	return &rel, nil
}

// checkRateLimit turns X-RateLimit-Remaining: 0 into a RateLimitError.
func checkRateLimit(resp *http.Response) error {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return nil
	}
	rem, err := strconv.Atoi(remaining)
	if err != nil || rem > 0 {
		return nil
	}
	limit, _ := strconv.Atoi(resp.Header.Get("X-RateLimit-Limit"))
	resetUnix, _ := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64)
	return &RateLimitError{Limit: limit, Remaining: 0, ResetAt: time.Unix(resetUnix, 0)}
}

// redactURL drops query and fragment so tokens in URLs never reach logs.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.User = nil
	return u.String()
}
