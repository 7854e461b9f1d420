package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/nextcloud-mcp/internal/auth"
	"github.com/teemow/nextcloud-mcp/internal/instrumentation"
	"github.com/teemow/nextcloud-mcp/internal/server"
)

// InstrumentedToolHandler wraps a tool handler with metrics and audit
// logging.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler mcpserver.ToolHandlerFunc,
) mcpserver.ToolHandlerFunc {
	return instrumented(toolName, "", "", sc, handler)
}

// InstrumentedToolHandlerWithApp is like InstrumentedToolHandler but also
// records the Nextcloud app and operation type, feeding the per-app API
// operation metrics.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithApp("nc_notes_list", instrumentation.AppNotes, instrumentation.OperationList, sc, handler))
func InstrumentedToolHandlerWithApp(
	toolName string,
	app string,
	operation string,
	sc *server.ServerContext,
	handler mcpserver.ToolHandlerFunc,
) mcpserver.ToolHandlerFunc {
	return instrumented(toolName, app, operation, sc, handler)
}

func instrumented(toolName, app, operation string, sc *server.ServerContext, handler mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx).
			WithMode(sc.Lifespan().Mode().String()).
			WithUser(requestUser(ctx))
		if app != "" {
			invocation.WithApp(app, operation)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			if err != nil {
				invocation.CompleteWithError(err)
			} else {
				invocation.Complete(false, nil)
			}
		} else {
			invocation.CompleteSuccess()
		}

		metrics := sc.Metrics()
		metrics.RecordToolInvocation(ctx, toolName, status, duration)
		if app != "" {
			metrics.RecordNextcloudOperation(ctx, app, operation, status, duration)
		}

		sc.Audit().LogToolInvocation(invocation)

		return result, err
	}
}

// requestUser derives the acting user's identity from the request context.
// OAuth requests carry verified claims; session requests carry the
// platform-supplied configuration. Static mode has no per-request identity.
func requestUser(ctx context.Context) string {
	if claims, ok := auth.ClaimsFromContext(ctx); ok {
		if claims.Email != "" {
			return claims.Email
		}
		return claims.Subject
	}
	if cfg, ok := auth.SessionConfigFromContext(ctx); ok {
		return cfg.Username
	}
	return ""
}
