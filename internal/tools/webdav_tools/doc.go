// Package webdav_tools provides MCP tools for the user's file storage via
// WebDAV: listing, reading, writing, and deleting files and directories.
package webdav_tools
