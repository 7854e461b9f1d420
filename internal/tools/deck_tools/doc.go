// Package deck_tools provides MCP tools for the Nextcloud Deck app: listing
// boards and stacks, and creating cards.
package deck_tools
