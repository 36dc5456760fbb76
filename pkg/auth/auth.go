// Package auth attaches data-source credentials to outgoing requests. The
// manifest and the dataset URLs it lists may live on different hosts, so
// credentials are looked up per request host.
package auth

import (
	"net"
	"net/http"
	"strings"
)

// Authenticator defines the interface for applying authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request) error
	Type() Type
}

// BasicAuth represents HTTP Basic Authentication credentials.
type BasicAuth struct {
	Username string
	Password string
}

// HeaderAuth represents authentication via custom HTTP headers.
type HeaderAuth struct {
	Headers map[string]string
}

// BearerAuth represents Bearer token authentication.
type BearerAuth struct {
	Token string
}

// Type represents the type of authentication.
type Type string

// Authentication types.
const (
	BasicAuthType  Type = "basic"
	HeaderAuthType Type = "header"
	BearerAuthType Type = "bearer"
)

// Apply adds Basic Authentication headers to the HTTP request.
func (b BasicAuth) Apply(req *http.Request) error {
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

// Type returns BasicAuthType.
func (b BasicAuth) Type() Type { return BasicAuthType }

// Apply adds custom headers to the HTTP request.
func (h HeaderAuth) Apply(req *http.Request) error {
	for k, v := range h.Headers {
		req.Header.Set(k, v)
	}
	return nil
}

// Type returns HeaderAuthType.
func (h HeaderAuth) Type() Type { return HeaderAuthType }

// Apply sets the Authorization header to the bearer token.
func (b BearerAuth) Apply(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+b.Token)
	return nil
}

// Type returns BearerAuthType.
func (b BearerAuth) Type() Type { return BearerAuthType }

// Hosts maps a host, with or without port, to its credentials.
type Hosts map[string]Authenticator

// For returns the credentials for host. An entry for "host:port" wins over
// one for the bare host name; nil means the request goes out anonymously.
func (h Hosts) For(host string) Authenticator {
	if len(h) == 0 {
		return nil
	}
	host = strings.ToLower(host)
	if a, ok := h[host]; ok {
		return a
	}
	if name, _, err := net.SplitHostPort(host); err == nil {
		return h[name]
	}
	return nil
}

// Apply authenticates req with the credentials registered for its host.
func (h Hosts) Apply(req *http.Request) error {
	a := h.For(req.URL.Host)
	if a == nil {
		return nil
	}
	return a.Apply(req)
}
