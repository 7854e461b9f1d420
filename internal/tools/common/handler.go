package common

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/nextcloud-mcp/internal/auth"
	"github.com/teemow/nextcloud-mcp/internal/nextcloud"
	"github.com/teemow/nextcloud-mcp/internal/server"
)

// WriteScope is the OAuth scope required for tools that modify data.
const WriteScope = "nextcloud:write"

// RequireWrite guards a write tool handler behind the write scope in OAuth
// deployments. Requests without verified claims (static and session modes)
// pass through unchanged.
func RequireWrite(handler mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return auth.RequireScopes([]string{WriteScope}, handler)
}

// ClientHandler is a tool handler that runs against a resolved Nextcloud
// client. The client is valid only for the duration of the call.
type ClientHandler func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error)

// WithClient adapts a ClientHandler into an MCP tool handler. It resolves
// the Nextcloud client for the request through the server's deployment
// mode, releases it when the handler returns, and surfaces resolution
// failures as tool errors.
func WithClient(sc *server.ServerContext, handler ClientHandler) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		client, release, err := sc.ResolveClient(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to resolve Nextcloud client: %v", err)), nil
		}
		defer release()

		args, _ := request.Params.Arguments.(map[string]interface{})
		return handler(ctx, client, args)
	}
}
