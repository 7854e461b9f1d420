package common

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/teemow/nextcloud-mcp/internal/instrumentation"
)

func TestInstrumentedToolHandlerPassesThroughResult(t *testing.T) {
	sc := newStaticServerContext(t)

	handler := InstrumentedToolHandler("nc_notes_list", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("notes"), nil
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
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
	if text.Text != "notes" {
		t.Errorf("got %q, want %q", text.Text, "notes")
	}
}

func TestInstrumentedToolHandlerPassesThroughError(t *testing.T) {
	sc := newStaticServerContext(t)

	wantErr := errors.New("backend unavailable")
	handler := InstrumentedToolHandler("nc_notes_list", sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return nil, wantErr
	})

	_, err := handler(context.Background(), mcp.CallToolRequest{})
	if !errors.Is(err, wantErr) {
		t.Fatalf("got error %v, want %v", err, wantErr)
	}
}

func TestInstrumentedToolHandlerWithAppPassesThroughToolError(t *testing.T) {
	sc := newStaticServerContext(t)

	handler := InstrumentedToolHandlerWithApp("nc_notes_get", instrumentation.AppNotes, instrumentation.OperationGet, sc, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultError("note not found"), nil
	})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("tool errors must not become protocol errors: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result to survive the wrapper")
	}
}
