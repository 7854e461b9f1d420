package config

import (
	"fmt"
	"net/url"
	"sync"

	"github.com/joeshaw/envdecode"
)

// Settings holds the process-wide configuration for the MCP server.
// It is decoded from environment variables once at startup and is
// immutable for the lifetime of the process.
type Settings struct {
	// Nextcloud credentials for static (shared client) mode
	NextcloudHost     string `env:"NEXTCLOUD_HOST"`
	NextcloudUsername string `env:"NEXTCLOUD_USERNAME"`
	NextcloudPassword string `env:"NEXTCLOUD_PASSWORD"`

	// HTTP listener configuration
	ListenHost string `env:"HOST,default=0.0.0.0"`
	ListenPort int    `env:"PORT,default=8081"`

	// EnableTokenExchange switches OAuth mode from multi-audience tokens
	// (the inbound token already carries the Nextcloud audience) to
	// RFC 8693 token exchange against the identity provider.
	EnableTokenExchange bool `env:"ENABLE_TOKEN_EXCHANGE,default=false"`

	// OIDC verification of inbound bearer tokens (OAuth mode)
	OIDCIssuer   string `env:"OIDC_ISSUER"`
	OIDCAudience string `env:"OIDC_AUDIENCE"`

	// Token exchange endpoint and client credentials (OAuth mode with
	// ENABLE_TOKEN_EXCHANGE=true)
	TokenExchangeURL          string `env:"TOKEN_EXCHANGE_URL"`
	TokenExchangeClientID     string `env:"TOKEN_EXCHANGE_CLIENT_ID"`
	TokenExchangeClientSecret string `env:"TOKEN_EXCHANGE_CLIENT_SECRET"`
	TokenExchangeAudience     string `env:"TOKEN_EXCHANGE_AUDIENCE,default=nextcloud"`
}

var (
	settings     *Settings
	settingsErr  error
	settingsOnce sync.Once
)

// Get returns the process-wide settings, decoding them from the
// environment on first use.
func Get() (*Settings, error) {
	settingsOnce.Do(func() {
		settings, settingsErr = loadFromEnv()
	})
	return settings, settingsErr
}

// loadFromEnv decodes and validates settings from the current environment.
// Exposed separately from Get so tests can exercise decoding without the
// process-wide singleton.
func loadFromEnv() (*Settings, error) {
	var s Settings
	if err := envdecode.Decode(&s); err != nil && err != envdecode.ErrNoTargetFieldsAreSet {
		return nil, fmt.Errorf("failed to decode settings from environment: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks the settings for malformed values. Missing optional
// fields are not an error here; each deployment mode validates the fields
// it needs when it starts.
func (s *Settings) Validate() error {
	if s.NextcloudHost != "" {
		if err := ValidateHostURL(s.NextcloudHost); err != nil {
			return fmt.Errorf("invalid NEXTCLOUD_HOST: %w", err)
		}
	}
	if s.ListenPort <= 0 || s.ListenPort > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 1 and 65535", s.ListenPort)
	}
	return nil
}

// ValidateHostURL verifies that host is an absolute http(s) URL.
func ValidateHostURL(host string) error {
	u, err := url.Parse(host)
	if err != nil {
		return fmt.Errorf("not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host component")
	}
	return nil
}

// ListenAddr returns the host:port address for the HTTP listener.
func (s *Settings) ListenAddr() string {
	return fmt.Sprintf("%s:%d", s.ListenHost, s.ListenPort)
}
