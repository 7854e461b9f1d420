package auth

import (
	"github.com/teemow/nextcloud-mcp/internal/nextcloud"
)

// Mode identifies the authentication deployment mode carried by a Lifespan.
type Mode int

const (
	// ModeUnknown is the zero value; resolving it fails with
	// ErrMalformedContext.
	ModeUnknown Mode = iota

	// ModeSession builds a client per request from platform-supplied
	// session configuration.
	ModeSession

	// ModeStatic returns the shared client built at startup from
	// environment credentials.
	ModeStatic

	// ModeOAuth builds a client per request from the inbound bearer
	// token, optionally exchanged for a Nextcloud-audience token.
	ModeOAuth
)

func (m Mode) String() string {
	switch m {
	case ModeSession:
		return "session"
	case ModeStatic:
		return "static"
	case ModeOAuth:
		return "oauth"
	default:
		return "unknown"
	}
}

// Lifespan is the server-lifetime context visible to every request handler.
// It is a closed tagged union: exactly one of the constructors below
// produces a valid value, and the resolver matches on the tag exhaustively.
type Lifespan struct {
	mode   Mode
	client *nextcloud.Client // ModeStatic only
	host   string            // ModeOAuth only
}

// StaticLifespan marks the deployment as static-credential mode, carrying
// the shared client that every request resolves to.
func StaticLifespan(client *nextcloud.Client) *Lifespan {
	return &Lifespan{mode: ModeStatic, client: client}
}

// OAuthLifespan marks the deployment as OAuth mode, carrying the Nextcloud
// host that per-request token clients are bound to.
func OAuthLifespan(host string) *Lifespan {
	return &Lifespan{mode: ModeOAuth, host: host}
}

// SessionLifespan marks the deployment as session (platform-hosted) mode.
// Credentials arrive with each request as session configuration.
func SessionLifespan() *Lifespan {
	return &Lifespan{mode: ModeSession}
}

// Mode returns the lifespan's tag.
func (l *Lifespan) Mode() Mode {
	if l == nil {
		return ModeUnknown
	}
	return l.mode
}

// SharedClient returns the shared client of a static lifespan, or nil.
func (l *Lifespan) SharedClient() *nextcloud.Client {
	if l == nil {
		return nil
	}
	return l.client
}

// Host returns the Nextcloud host of an OAuth lifespan, or "".
func (l *Lifespan) Host() string {
	if l == nil {
		return ""
	}
	return l.host
}
