package cookbook_tools

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/nextcloud-mcp/internal/auth"
	"github.com/teemow/nextcloud-mcp/internal/config"
	"github.com/teemow/nextcloud-mcp/internal/nextcloud"
	"github.com/teemow/nextcloud-mcp/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	client, err := nextcloud.New("http://localhost:8080", "testuser", "testpass")
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	settings := &config.Settings{}
	resolver := auth.NewResolver(settings, nil, nil)
	return server.NewServerContext(context.Background(), auth.StaticLifespan(client), settings, resolver, nil, nil)
}

func TestRegisterCookbookTools(t *testing.T) {
	sc := newTestServerContext(t)
	defer sc.Shutdown()

	for _, readOnly := range []bool{false, true} {
		mcpSrv := mcpserver.NewMCPServer("test-server", "1.0.0",
			mcpserver.WithToolCapabilities(true),
		)

		if err := RegisterCookbookTools(mcpSrv, sc, readOnly); err != nil {
			t.Errorf("RegisterCookbookTools(readOnly=%v) error = %v", readOnly, err)
		}
	}
}
