package tables_tools

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

// RegisterTablesTools registers all Tables tools with the MCP server. All
// Tables operations are read-only.
func RegisterTablesTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List tables tool
	listTablesTool := mcp.NewTool("nc_tables_list",
		mcp.WithDescription("List all tables of the authenticated user"),
	)

	s.AddTool(listTablesTool, common.InstrumentedToolHandlerWithApp("nc_tables_list", instrumentation.AppTables, instrumentation.OperationList, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			tables, err := client.ListTables(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list tables: %v", err)), nil
			}

			result, _ := json.MarshalIndent(tables, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// Get table tool
	getTableTool := mcp.NewTool("nc_tables_get",
		mcp.WithDescription("Get details of a table, including its schema"),
		mcp.WithNumber("table_id",
			mcp.Required(),
			mcp.Description("The ID of the table to retrieve"),
		),
	)

	s.AddTool(getTableTool, common.InstrumentedToolHandlerWithApp("nc_tables_get", instrumentation.AppTables, instrumentation.OperationGet, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			tableID, err := common.RequiredInt(args, "table_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			table, err := client.GetTable(ctx, tableID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get table: %v", err)), nil
			}

			result, _ := json.MarshalIndent(table, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// List rows tool
	listRowsTool := mcp.NewTool("nc_tables_list_rows",
		mcp.WithDescription("List the rows of a table"),
		mcp.WithNumber("table_id",
			mcp.Required(),
			mcp.Description("The ID of the table"),
		),
	)

	s.AddTool(listRowsTool, common.InstrumentedToolHandlerWithApp("nc_tables_list_rows", instrumentation.AppTables, instrumentation.OperationList, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			tableID, err := common.RequiredInt(args, "table_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			rows, err := client.ListRows(ctx, tableID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list rows: %v", err)), nil
			}

			result, _ := json.MarshalIndent(rows, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	return nil
}
