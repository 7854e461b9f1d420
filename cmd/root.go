package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the nextcloud-mcp application
var rootCmd = &cobra.Command{
	Use:   "nextcloud-mcp",
	Short: "MCP server for Nextcloud",
	Long: `nextcloud-mcp exposes a Nextcloud instance to AI assistants through the
Model Context Protocol (MCP).

It provides tools for Notes, Files (WebDAV), Calendar (CalDAV), Contacts
(CardDAV), Deck, Tables, Cookbook, and file sharing, with three
authentication deployment modes: static credentials from the environment,
per-session credentials supplied by a hosting platform, and OAuth bearer
tokens with optional RFC 8693 token exchange.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "nextcloud-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
