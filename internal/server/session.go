package server

import (
	"net/http"

	"github.com/teemow/nextcloud-mcp/internal/auth"
)

// Query parameters a hosting platform uses to supply per-request
// credentials in session mode.
const (
	paramHost     = "nextcloud_host"
	paramUsername = "username"
	paramPassword = "password"
)

// SessionConfigFromRequest extracts the session credentials from the
// request's query parameters. It returns false when none of the parameters
// are present; a partially filled config is returned as-is and fails
// validation at resolve time so the caller gets a precise error.
func SessionConfigFromRequest(r *http.Request) (*auth.SessionConfig, bool) {
	query := r.URL.Query()

	cfg := &auth.SessionConfig{
		Host:     query.Get(paramHost),
		Username: query.Get(paramUsername),
		Password: query.Get(paramPassword),
	}
	if cfg.Host == "" && cfg.Username == "" && cfg.Password == "" {
		return nil, false
	}
	return cfg, true
}

// SessionConfigMiddleware attaches platform-supplied session credentials
// to the request context, where the resolver picks them up. The
// credentials live only in the request context; they are never written to
// any process-wide state.
func SessionConfigMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cfg, ok := SessionConfigFromRequest(r); ok {
			r = r.WithContext(auth.WithSessionConfig(r.Context(), cfg))
		}
		next.ServeHTTP(w, r)
	})
}
