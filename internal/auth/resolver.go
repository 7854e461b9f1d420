package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/teemow/nextcloud-mcp/internal/config"
	"github.com/teemow/nextcloud-mcp/internal/logging"
	"github.com/teemow/nextcloud-mcp/internal/nextcloud"
)

// ErrMalformedContext is returned when a lifespan context matches none of
// the recognized shapes. This is a wiring defect, not a runtime condition;
// it is never retried.
var ErrMalformedContext = errors.New("auth: lifespan context matches no recognized shape")

// ErrMissingToken is returned when OAuth mode resolves a request that
// carries no validated bearer token.
var ErrMissingToken = errors.New("auth: no validated bearer token in request context")

// ErrMissingSessionConfig is returned when session mode resolves a request
// that carries no session configuration.
var ErrMissingSessionConfig = errors.New("auth: no session configuration in request context")

// TokenExchanger converts an inbound token into one scoped to the
// Nextcloud audience (RFC 8693). Implemented by *Exchanger; tests
// substitute counters.
type TokenExchanger interface {
	Exchange(ctx context.Context, subjectToken string) (string, error)
}

// Resolver maps a lifespan context to a usable Nextcloud client.
//
// Credential state is strictly request-scoped on every per-request path:
// session configuration and bearer tokens are passed as explicit
// parameters, never through process-wide state, so concurrent sessions can
// never observe each other's credentials.
type Resolver struct {
	settings  *config.Settings
	exchanger TokenExchanger
	logger    *slog.Logger
}

// NewResolver creates a resolver. The exchanger may be nil when token
// exchange is disabled.
func NewResolver(settings *config.Settings, exchanger TokenExchanger, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		settings:  settings,
		exchanger: exchanger,
		logger:    logger,
	}
}

// noopRelease is returned for the shared client, which outlives requests.
func noopRelease() {}

// Resolve returns the Nextcloud client for the current request, together
// with a release function the caller must invoke when done (also on
// failure paths after a successful resolve).
//
// Precedence order is strict:
//  1. session lifespan: build a client from the request's session
//     configuration; the client lives for this request only
//  2. static lifespan: return the shared client unchanged
//  3. OAuth lifespan: build a client from the validated inbound token,
//     exchanged for a Nextcloud-audience token when exchange is enabled
//  4. anything else fails with ErrMalformedContext
func (r *Resolver) Resolve(ctx context.Context, lifespan *Lifespan, session *SessionConfig) (*nextcloud.Client, func(), error) {
	switch lifespan.Mode() {
	case ModeSession:
		return r.resolveSession(ctx, session)
	case ModeStatic:
		if lifespan.SharedClient() == nil {
			return nil, nil, fmt.Errorf("%w: static lifespan without shared client", ErrMalformedContext)
		}
		return lifespan.SharedClient(), noopRelease, nil
	case ModeOAuth:
		return r.resolveOAuth(ctx, lifespan.Host())
	default:
		return nil, nil, fmt.Errorf("%w: mode %q", ErrMalformedContext, lifespan.Mode())
	}
}

func (r *Resolver) resolveSession(ctx context.Context, session *SessionConfig) (*nextcloud.Client, func(), error) {
	if session == nil {
		if fromCtx, ok := SessionConfigFromContext(ctx); ok {
			session = fromCtx
		}
	}
	if session == nil {
		return nil, nil, ErrMissingSessionConfig
	}
	if err := session.Validate(); err != nil {
		return nil, nil, err
	}

	client, err := nextcloud.New(session.Host, session.Username, session.Password)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create session client: %w", err)
	}

	r.logger.Debug("created session client",
		logging.Mode(ModeSession.String()),
		logging.UserHash(session.Username))

	return client, client.Close, nil
}

func (r *Resolver) resolveOAuth(ctx context.Context, host string) (*nextcloud.Client, func(), error) {
	token, ok := TokenFromContext(ctx)
	if !ok {
		return nil, nil, ErrMissingToken
	}

	credential := token
	if r.settings != nil && r.settings.EnableTokenExchange {
		if r.exchanger == nil {
			return nil, nil, fmt.Errorf("token exchange is enabled but no exchanger is configured")
		}
		exchanged, err := r.exchanger.Exchange(ctx, token)
		if err != nil {
			return nil, nil, fmt.Errorf("token exchange failed: %w", err)
		}
		credential = exchanged
	}
	// Without exchange, the inbound token already carries the Nextcloud
	// audience; the verifier checked the MCP audience and Nextcloud
	// re-validates its own on every API call.

	client, err := nextcloud.NewWithToken(host, credential)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create OAuth client: %w", err)
	}

	r.logger.Debug("created OAuth client",
		logging.Mode(ModeOAuth.String()),
		slog.Bool("token_exchange", credential != token))

	return client, client.Close, nil
}
