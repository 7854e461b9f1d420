// Package sharing_tools provides MCP tools for Nextcloud file sharing via
// the OCS shares API: listing, creating, and deleting shares.
package sharing_tools
