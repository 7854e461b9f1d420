package auth

import (
	"context"
	"fmt"

	"github.com/teemow/nextcloud-mcp/internal/config"
)

// contextKey is the type for context keys used by this package.
type contextKey string

const (
	// tokenContextKey carries the validated raw bearer token.
	tokenContextKey contextKey = "auth_token"

	// claimsContextKey carries the verified token claims.
	claimsContextKey contextKey = "auth_claims"

	// sessionConfigContextKey carries the per-request session
	// configuration in session mode.
	sessionConfigContextKey contextKey = "session_config"
)

// SessionConfig is the per-request credential bundle supplied by a hosting
// platform in session mode. It is constructed once per inbound request and
// discarded afterwards; it must never be written to process-wide state.
type SessionConfig struct {
	Host     string
	Username string
	Password string
}

// Validate checks that the session configuration is complete and the host
// URL is well formed.
func (s *SessionConfig) Validate() error {
	if s.Host == "" || s.Username == "" || s.Password == "" {
		return fmt.Errorf("session config requires nextcloud_host, username and password")
	}
	if err := config.ValidateHostURL(s.Host); err != nil {
		return fmt.Errorf("invalid session host URL: %w", err)
	}
	return nil
}

// WithToken returns a context carrying the validated raw bearer token.
// Only the verifier middleware should call this.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext returns the validated bearer token of the request, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok && token != ""
}

// WithClaims returns a context carrying verified token claims.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext returns the verified token claims of the request, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}

// WithSessionConfig returns a context carrying the per-request session
// configuration.
func WithSessionConfig(ctx context.Context, cfg *SessionConfig) context.Context {
	return context.WithValue(ctx, sessionConfigContextKey, cfg)
}

// SessionConfigFromContext returns the session configuration of the
// request, if any.
func SessionConfigFromContext(ctx context.Context) (*SessionConfig, bool) {
	cfg, ok := ctx.Value(sessionConfigContextKey).(*SessionConfig)
	return cfg, ok && cfg != nil
}
