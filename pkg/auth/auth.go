// Package auth applies credentials to outgoing feed and asset requests.
package auth

import (
	"net/http"
	"strings"
)

// Authenticator defines the interface for applying authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// Type represents the type of authentication.
type Type string

// Authentication types.
const (
	// HeaderAuthType represents custom header-based authentication.
	HeaderAuthType Type = "header"
	// BearerAuthType represents Bearer token authentication.
	BearerAuthType Type = "bearer"
)

// HeaderAuth represents authentication via custom HTTP headers.
type HeaderAuth struct {
	Headers map[string]string
}

// Apply adds custom headers to the HTTP request.
func (h HeaderAuth) Apply(req *http.Request) error {
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}
	return nil
}

// Type returns HeaderAuthType.
func (h HeaderAuth) Type() Type { return HeaderAuthType }

// BearerAuth represents Bearer token authentication, e.g. a GitHub token.
type BearerAuth struct {
	Token string
}

// Apply sets the Authorization header. An empty token leaves the request alone.
func (b BearerAuth) Apply(req *http.Request) error {
	if b.Token == "" {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// Type returns BearerAuthType.
func (b BearerAuth) Type() Type { return BearerAuthType }

// HostScoped applies Inner only to requests for one of Hosts. Release assets
// redirect to storage hosts that must never see the feed credentials.
type HostScoped struct {
	Hosts []string
	Inner Authenticator
}

// ForHost scopes inner to a single host.
func ForHost(host string, inner Authenticator) HostScoped {
	return HostScoped{Hosts: []string{host}, Inner: inner}
}

// Apply delegates to Inner when the request host matches.
func (h HostScoped) Apply(req *http.Request) error {
	if h.Inner == nil || req.URL == nil {
		return nil
	}
	for _, host := range h.Hosts {
		if strings.EqualFold(req.URL.Host, host) {
			return h.Inner.Apply(req)
		}
	}
	return nil
}

// Type returns the type of the wrapped authenticator.
func (h HostScoped) Type() Type {
	if h.Inner == nil {
		return ""
	}
	return h.Inner.Type()
}
