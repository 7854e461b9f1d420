// Package tables_tools provides MCP tools for the Nextcloud Tables app:
// listing tables, reading table schemas, and listing rows.
package tables_tools
