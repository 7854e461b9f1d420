// Package calendar_tools provides MCP tools for Nextcloud calendars via
// CalDAV: listing calendars and events, creating and deleting events.
package calendar_tools
