package calendar_tools

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

func TestRegisterCalendarTools(t *testing.T) {
	sc := newTestServerContext(t)
	defer sc.Shutdown()

	tests := []struct {
		name     string
		readOnly bool
		wantErr  bool
	}{
		{
			name:     "register in read-write mode",
			readOnly: false,
			wantErr:  false,
		},
		{
			name:     "register in read-only mode",
			readOnly: true,
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mcpSrv := mcpserver.NewMCPServer("test-server", "1.0.0",
				mcpserver.WithToolCapabilities(true),
			)

			err := RegisterCalendarTools(mcpSrv, sc, tt.readOnly)
			if (err != nil) != tt.wantErr {
				t.Errorf("RegisterCalendarTools() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
