// Package resources provides MCP resources for exposing Nextcloud server
// data. Resources are read-only data sources that MCP clients can fetch,
// such as the capability document of the connected Nextcloud instance.
package resources
