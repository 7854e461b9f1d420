package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/nextcloud-mcp/internal/server"
)

// RegisterCapabilitiesResource registers the nc://capabilities resource,
// exposing the Nextcloud server version and installed app capabilities so
// MCP clients can discover which tools are usable against this host.
func RegisterCapabilitiesResource(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	capabilitiesResource := mcp.NewResource(
		"nc://capabilities",
		"Nextcloud Capabilities",
		mcp.WithResourceDescription("Server version and app capabilities of the connected Nextcloud instance"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(capabilitiesResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleCapabilities(ctx, request, sc)
	})

	return nil
}

func handleCapabilities(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	client, release, err := sc.ResolveClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve Nextcloud client: %w", err)
	}
	defer release()

	caps, err := client.Capabilities(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch capabilities: %w", err)
	}

	data := map[string]interface{}{
		"host":         client.Host(),
		"version":      caps.Version,
		"capabilities": caps.Capabilities,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal capabilities: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      request.Params.URI,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
