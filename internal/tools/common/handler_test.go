package common

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/nextcloud-mcp/internal/auth"
	"github.com/teemow/nextcloud-mcp/internal/config"
	"github.com/teemow/nextcloud-mcp/internal/nextcloud"
	"github.com/teemow/nextcloud-mcp/internal/server"
)

func newStaticServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	client, err := nextcloud.New("http://localhost:8080", "alice", "secret")
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	settings := &config.Settings{}
	resolver := auth.NewResolver(settings, nil, nil)
	return server.NewServerContext(context.Background(), auth.StaticLifespan(client), settings, resolver, nil, nil)
}

func newSessionServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	settings := &config.Settings{}
	resolver := auth.NewResolver(settings, nil, nil)
	return server.NewServerContext(context.Background(), auth.SessionLifespan(), settings, resolver, nil, nil)
}

func TestWithClientPassesResolvedClient(t *testing.T) {
	sc := newStaticServerContext(t)

	var gotClient *nextcloud.Client
	handler := WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
		gotClient = client
		return mcp.NewToolResultText("ok"), nil
	})

	request := mcp.CallToolRequest{}
	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success result")
	}
	if gotClient == nil {
		t.Fatal("handler did not receive a client")
	}
	if gotClient != sc.Lifespan().SharedClient() {
		t.Error("expected the shared client in static mode")
	}
}

func TestWithClientPassesArguments(t *testing.T) {
	sc := newStaticServerContext(t)

	handler := WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
		title, err := RequiredString(args, "title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(title), nil
	})

	request := mcp.CallToolRequest{}
	request.Params.Arguments = map[string]interface{}{"title": "Groceries"}

	result, err := handler(context.Background(), request)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success result")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	if text.Text != "Groceries" {
		t.Errorf("got %q, want %q", text.Text, "Groceries")
	}
}

func TestWithClientResolutionFailureBecomesToolError(t *testing.T) {
	// Session mode without session configuration in the context cannot
	// resolve a client.
	sc := newSessionServerContext(t)

	called := false
	handler := WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("resolution failure should be a tool error, got protocol error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result")
	}
	if called {
		t.Error("handler must not run when resolution fails")
	}
}

func TestRequireWrite(t *testing.T) {
	handler := RequireWrite(func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	})

	// No verified claims (static and session modes): pass through.
	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Error("expected pass-through without claims")
	}

	// OAuth claims without the write scope: rejected.
	ctx := auth.WithClaims(context.Background(), &auth.Claims{
		Subject: "alice",
		Scopes:  []string{"openid"},
	})
	result, err = handler(ctx, mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Error("expected rejection without write scope")
	}

	// OAuth claims with the write scope: allowed.
	ctx = auth.WithClaims(context.Background(), &auth.Claims{
		Subject: "alice",
		Scopes:  []string{"openid", WriteScope},
	})
	result, err = handler(ctx, mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Error("expected success with write scope")
	}
}

func TestWithClientSessionFromContext(t *testing.T) {
	sc := newSessionServerContext(t)

	var gotHost string
	handler := WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
		gotHost = client.Host()
		return mcp.NewToolResultText("ok"), nil
	})

	ctx := auth.WithSessionConfig(context.Background(), &auth.SessionConfig{
		Host:     "https://cloud.example.com",
		Username: "bob",
		Password: "app-password",
	})

	result, err := handler(ctx, mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatal("expected success result")
	}
	if gotHost != "https://cloud.example.com" {
		t.Errorf("client host = %q, want session host", gotHost)
	}
}
