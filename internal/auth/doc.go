// Package auth resolves the Nextcloud client a request acts with.
//
// A deployment runs in exactly one of three modes, captured as a closed
// tagged union by Lifespan:
//
//   - session: a hosting platform supplies credentials with every request
//     (query parameters on the HTTP endpoint); a client is built per
//     request and released afterwards
//   - static: a shared client is built once at startup from NEXTCLOUD_*
//     environment variables and reused by every request
//   - oauth: each request carries a bearer token verified against an OIDC
//     issuer; a client is built from the token, optionally after RFC 8693
//     token exchange for the Nextcloud audience
//
// Resolver.Resolve matches on the lifespan tag in strict precedence order
// and fails with ErrMalformedContext for anything outside the union.
// Per-request credentials travel exclusively through explicit parameters
// and request contexts; nothing in this package reads or writes process
// environment variables, so concurrent sessions cannot leak credentials
// into one another.
package auth
