// Package contacts_tools provides MCP tools for Nextcloud address books via
// CardDAV: listing address books and contacts, creating and deleting
// contacts.
package contacts_tools
