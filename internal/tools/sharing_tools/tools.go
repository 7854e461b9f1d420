package sharing_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/nextcloud-mcp/internal/instrumentation"
	"github.com/teemow/nextcloud-mcp/internal/nextcloud"
	"github.com/teemow/nextcloud-mcp/internal/server"
	"github.com/teemow/nextcloud-mcp/internal/tools/common"
)

// RegisterSharingTools registers all file sharing tools with the MCP server.
// Write operations are only registered when readOnly is false.
func RegisterSharingTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List shares tool (read-only, always available)
	listSharesTool := mcp.NewTool("nc_shares_list",
		mcp.WithDescription("List shares created by the authenticated user"),
		mcp.WithString("path",
			mcp.Description("Only list shares for this file or directory (default: all shares)"),
		),
	)

	s.AddTool(listSharesTool, common.InstrumentedToolHandlerWithApp("nc_shares_list", instrumentation.AppSharing, instrumentation.OperationList, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			path := common.OptionalString(args, "path")

			shares, err := client.ListShares(ctx, path)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list shares: %v", err)), nil
			}

			result, _ := json.MarshalIndent(shares, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// Register create/delete share tools only if not in read-only mode
	if !readOnly {
		// Create share tool
		createShareTool := mcp.NewTool("nc_shares_create",
			mcp.WithDescription("Share a file or directory with a user, a group, or via public link"),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Path of the file or directory to share"),
			),
			mcp.WithNumber("share_type",
				mcp.Required(),
				mcp.Description("Share type: 0 = user, 1 = group, 3 = public link, 6 = federated"),
			),
			mcp.WithString("share_with",
				mcp.Description("User or group to share with (required for user, group, and federated shares)"),
			),
			mcp.WithNumber("permissions",
				mcp.Description("Permission bitmask: 1 = read, 2 = update, 4 = create, 8 = delete, 16 = share (default: read)"),
			),
		)

		s.AddTool(createShareTool, common.InstrumentedToolHandlerWithApp("nc_shares_create", instrumentation.AppSharing, instrumentation.OperationCreate, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				path, err := common.RequiredString(args, "path")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				shareType, err := common.RequiredInt(args, "share_type")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				shareWith := common.OptionalString(args, "share_with")
				if shareType != nextcloud.ShareTypeLink && shareWith == "" {
					return mcp.NewToolResultError("share_with is required for non-link shares"), nil
				}

				permissions := common.OptionalInt(args, "permissions", 1)

				share, err := client.CreateShare(ctx, path, shareType, shareWith, permissions)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to create share: %v", err)), nil
				}

				result, _ := json.MarshalIndent(share, "", "  ")
				return mcp.NewToolResultText(fmt.Sprintf("Share created successfully:\n%s", string(result))), nil
			}))))

		// Delete share tool
		deleteShareTool := mcp.NewTool("nc_shares_delete",
			mcp.WithDescription("Delete a share"),
			mcp.WithString("share_id",
				mcp.Required(),
				mcp.Description("The ID of the share to delete"),
			),
		)

		s.AddTool(deleteShareTool, common.InstrumentedToolHandlerWithApp("nc_shares_delete", instrumentation.AppSharing, instrumentation.OperationDelete, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				shareID, err := common.RequiredString(args, "share_id")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				if err := client.DeleteShare(ctx, shareID); err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to delete share: %v", err)), nil
				}

				return mcp.NewToolResultText(fmt.Sprintf("Share %s deleted successfully", shareID)), nil
			}))))
	}

	return nil
}
