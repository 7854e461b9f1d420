package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/teemow/nextcloud-mcp/internal/logging"
)

// Claims is the subset of verified token claims the server acts on.
type Claims struct {
	Subject  string
	Issuer   string
	Audience []string
	Scopes   []string
	Email    string
	Expiry   time.Time
}

// HasScope reports whether the token was granted the named scope.
func (c *Claims) HasScope(scope string) bool {
	if c == nil {
		return false
	}
	return slices.Contains(c.Scopes, scope)
}

// Verifier validates inbound bearer tokens against an OIDC issuer and
// checks the MCP server's audience.
type Verifier struct {
	verify   func(ctx context.Context, rawToken string) (*Claims, error)
	audience string
	logger   *slog.Logger
}

// NewVerifier discovers the issuer's OIDC configuration and returns a
// verifier that checks signatures, expiry and the given audience.
func NewVerifier(ctx context.Context, issuer, audience string, logger *slog.Logger) (*Verifier, error) {
	if issuer == "" {
		return nil, fmt.Errorf("OAuth mode requires OIDC_ISSUER")
	}
	if audience == "" {
		return nil, fmt.Errorf("OAuth mode requires OIDC_AUDIENCE")
	}
	if logger == nil {
		logger = slog.Default()
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to discover OIDC issuer %s: %w", issuer, err)
	}
	idVerifier := provider.Verifier(&oidc.Config{ClientID: audience})

	return &Verifier{
		verify:   verifyWith(idVerifier),
		audience: audience,
		logger:   logger,
	}, nil
}

func verifyWith(idVerifier *oidc.IDTokenVerifier) func(context.Context, string) (*Claims, error) {
	return func(ctx context.Context, rawToken string) (*Claims, error) {
		idToken, err := idVerifier.Verify(ctx, rawToken)
		if err != nil {
			return nil, fmt.Errorf("token verification failed: %w", err)
		}

		var extra struct {
			Scope string `json:"scope"`
			Email string `json:"email"`
		}
		if err := idToken.Claims(&extra); err != nil {
			return nil, fmt.Errorf("failed to parse token claims: %w", err)
		}

		return &Claims{
			Subject:  idToken.Subject,
			Issuer:   idToken.Issuer,
			Audience: idToken.Audience,
			Scopes:   strings.Fields(extra.Scope),
			Email:    extra.Email,
			Expiry:   idToken.Expiry,
		}, nil
	}
}

// VerifyToken validates a raw bearer token and returns its claims.
func (v *Verifier) VerifyToken(ctx context.Context, rawToken string) (*Claims, error) {
	return v.verify(ctx, rawToken)
}

// Middleware authenticates every request with a bearer token. Requests
// without a valid token are rejected with 401 and a WWW-Authenticate
// challenge; on success the raw token and its claims are attached to the
// request context for the resolver.
func (v *Verifier) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			v.challenge(w, "invalid_request", "missing bearer token")
			return
		}

		claims, err := v.verify(r.Context(), token)
		if err != nil {
			v.logger.Debug("rejected bearer token",
				logging.Operation("verify_token"),
				logging.Err(err))
			v.challenge(w, "invalid_token", "token verification failed")
			return
		}

		ctx := WithToken(r.Context(), token)
		ctx = WithClaims(ctx, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (v *Verifier) challenge(w http.ResponseWriter, errCode, description string) {
	w.Header().Set("WWW-Authenticate",
		fmt.Sprintf(`Bearer realm=%q, error=%q, error_description=%q`, v.audience, errCode, description))
	http.Error(w, description, http.StatusUnauthorized)
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
