package config

import (
	"fmt"
	"strings"

	"github.com/cperrin88/jsonfetch/pkg/auth"
)

// AuthConfig holds the credentials for one data-source host. Exactly one of
// the methods must be set.
type AuthConfig struct {
	BasicAuth  *BasicAuth  `yaml:"basic,omitempty"`
	HeaderAuth *HeaderAuth `yaml:"header,omitempty"`
	BearerAuth *BearerAuth `yaml:"bearer,omitempty"`
}

// BasicAuth holds configuration for HTTP Basic Authentication.
type BasicAuth struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// HeaderAuth holds configuration for custom header-based authentication.
type HeaderAuth struct {
	Headers map[string]string `yaml:"headers"`
}

// BearerAuth holds configuration for Bearer token authentication.
type BearerAuth struct {
	Token string `yaml:"token"`
}

// ToAuthenticator converts the BasicAuth configuration to an Authenticator.
func (b *BasicAuth) ToAuthenticator() auth.Authenticator {
	return auth.BasicAuth{Username: b.Username, Password: b.Password}
}

// ToAuthenticator converts the HeaderAuth configuration to an Authenticator.
func (h *HeaderAuth) ToAuthenticator() auth.Authenticator {
	return auth.HeaderAuth{Headers: h.Headers}
}

// ToAuthenticator converts the BearerAuth configuration to an Authenticator.
func (b *BearerAuth) ToAuthenticator() auth.Authenticator {
	return auth.BearerAuth{Token: b.Token}
}

// authenticator returns the configured method, or nil unless exactly one is set.
func (a *AuthConfig) authenticator() auth.Authenticator {
	if a == nil {
		return nil
	}
	var found []auth.Authenticator
	if a.BasicAuth != nil {
		found = append(found, a.BasicAuth.ToAuthenticator())
	}
	if a.HeaderAuth != nil {
		found = append(found, a.HeaderAuth.ToAuthenticator())
	}
	if a.BearerAuth != nil {
		found = append(found, a.BearerAuth.ToAuthenticator())
	}
	if len(found) != 1 {
		return nil
	}
	return found[0]
}

// ToAuthMap converts the per-host credentials into lookup form.
// Returns nil if no credentials are configured.
func (c *Config) ToAuthMap() auth.Hosts {
	if len(c.Auth) == 0 {
		return nil
	}
	results := make(auth.Hosts, len(c.Auth))
	for host, cfg := range c.Auth {
		if a := cfg.authenticator(); a != nil {
			results[strings.ToLower(host)] = a
		}
	}
	return results
}

func validateAuth(hosts map[string]*AuthConfig) error {
	for host, cfg := range hosts {
		if host == "" {
			return fmt.Errorf("auth entry with empty host")
		}
		if cfg.authenticator() == nil {
			return fmt.Errorf("auth for host %s must set exactly one of basic, header, bearer", host)
		}
	}
	return nil
}
