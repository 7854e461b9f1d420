// Package common provides shared helpers for MCP tool implementations:
// per-request Nextcloud client resolution, argument extraction, and the
// instrumented handler wrapper that records metrics and audit logs around
// every tool invocation.
package common
