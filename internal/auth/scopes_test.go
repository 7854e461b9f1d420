package auth

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(called *bool) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		*called = true
		return mcp.NewToolResultText("ok"), nil
	}
}

func TestRequireScopesPassesWithoutClaims(t *testing.T) {
	var called bool
	handler := RequireScopes([]string{"notes:write"}, okHandler(&called))

	_, err := handler(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, called, "handler must run when the deployment mode has no scopes")
}

func TestRequireScopesGranted(t *testing.T) {
	var called bool
	handler := RequireScopes([]string{"notes:write"}, okHandler(&called))

	ctx := WithClaims(context.Background(), &Claims{Scopes: []string{"notes:read", "notes:write"}})

	result, err := handler(ctx, mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, result.IsError)
}

func TestRequireScopesMissing(t *testing.T) {
	var called bool
	handler := RequireScopes([]string{"notes:write", "files:write"}, okHandler(&called))

	ctx := WithClaims(context.Background(), &Claims{Scopes: []string{"notes:read"}})

	result, err := handler(ctx, mcp.CallToolRequest{})
	require.NoError(t, err)
	assert.False(t, called, "handler must not run without the granted scopes")
	require.True(t, result.IsError)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, "notes:write")
	assert.Contains(t, text.Text, "files:write")
}
