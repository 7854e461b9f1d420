package cookbook_tools

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

// RegisterCookbookTools registers all Cookbook tools with the MCP server.
// All Cookbook operations are read-only.
func RegisterCookbookTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List recipes tool
	listRecipesTool := mcp.NewTool("nc_cookbook_list",
		mcp.WithDescription("List all recipes in the user's cookbook"),
	)

	s.AddTool(listRecipesTool, common.InstrumentedToolHandlerWithApp("nc_cookbook_list", instrumentation.AppCookbook, instrumentation.OperationList, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			recipes, err := client.ListRecipes(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list recipes: %v", err)), nil
			}

			result, _ := json.MarshalIndent(recipes, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// Get recipe tool
	getRecipeTool := mcp.NewTool("nc_cookbook_get",
		mcp.WithDescription("Get a recipe with its full ingredients and instructions"),
		mcp.WithString("recipe_id",
			mcp.Required(),
			mcp.Description("The ID of the recipe to retrieve"),
		),
	)

	s.AddTool(getRecipeTool, common.InstrumentedToolHandlerWithApp("nc_cookbook_get", instrumentation.AppCookbook, instrumentation.OperationGet, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			recipeID, err := common.RequiredString(args, "recipe_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			recipe, err := client.GetRecipe(ctx, recipeID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get recipe: %v", err)), nil
			}

			result, _ := json.MarshalIndent(recipe, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	return nil
}
