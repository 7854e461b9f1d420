package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RequireScopes wraps a tool handler with a scope check. When the request
// carries verified claims (OAuth mode), every listed scope must have been
// granted or the call fails with a tool error before the handler runs.
// Requests without claims (static and session modes, where scopes do not
// exist) pass through unchanged.
func RequireScopes(scopes []string, handler mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		claims, ok := ClaimsFromContext(ctx)
		if !ok {
			return handler(ctx, request)
		}

		var missing []string
		for _, scope := range scopes {
			if !claims.HasScope(scope) {
				missing = append(missing, scope)
			}
		}
		if len(missing) > 0 {
			return mcp.NewToolResultError(fmt.Sprintf(
				"insufficient scope: token is missing %s", strings.Join(missing, ", "))), nil
		}

		return handler(ctx, request)
	}
}
