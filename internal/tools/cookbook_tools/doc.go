// Package cookbook_tools provides MCP tools for the Nextcloud Cookbook app:
// listing and reading recipes.
package cookbook_tools
