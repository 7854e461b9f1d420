// Package server wires the MCP server to its transports and holds the
// server-lifetime state.
//
// ServerContext carries the deployment mode (auth.Lifespan), the resolver
// that maps each request to a Nextcloud client, and the observability
// plumbing. HTTPServer mounts the streamable HTTP transport at /mcp with a
// middleware chain that depends on the mode: session mode extracts
// per-request credentials from query parameters, OAuth mode authenticates
// bearer tokens against the configured OIDC issuer. Health endpoints for
// Kubernetes probes are served on the same listener; Prometheus metrics
// live on a dedicated port.
package server
