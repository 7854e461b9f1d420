// Package notes_tools provides MCP tools for the Nextcloud Notes app:
// listing, reading, searching, creating, updating, and deleting notes.
package notes_tools
