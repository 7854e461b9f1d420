package deck_tools

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

// RegisterDeckTools registers all Deck (kanban) tools with the MCP server.
// Write operations are only registered when readOnly is false.
func RegisterDeckTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List boards tool (read-only, always available)
	listBoardsTool := mcp.NewTool("nc_deck_list_boards",
		mcp.WithDescription("List all Deck boards of the authenticated user"),
	)

	s.AddTool(listBoardsTool, common.InstrumentedToolHandlerWithApp("nc_deck_list_boards", instrumentation.AppDeck, instrumentation.OperationList, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			boards, err := client.ListBoards(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list boards: %v", err)), nil
			}

			result, _ := json.MarshalIndent(boards, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// Get board tool
	getBoardTool := mcp.NewTool("nc_deck_get_board",
		mcp.WithDescription("Get details of a Deck board"),
		mcp.WithNumber("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board to retrieve"),
		),
	)

	s.AddTool(getBoardTool, common.InstrumentedToolHandlerWithApp("nc_deck_get_board", instrumentation.AppDeck, instrumentation.OperationGet, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			boardID, err := common.RequiredInt(args, "board_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			board, err := client.GetBoard(ctx, boardID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get board: %v", err)), nil
			}

			result, _ := json.MarshalIndent(board, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// List stacks tool
	listStacksTool := mcp.NewTool("nc_deck_list_stacks",
		mcp.WithDescription("List the stacks (columns) of a Deck board, including their cards"),
		mcp.WithNumber("board_id",
			mcp.Required(),
			mcp.Description("The ID of the board"),
		),
	)

	s.AddTool(listStacksTool, common.InstrumentedToolHandlerWithApp("nc_deck_list_stacks", instrumentation.AppDeck, instrumentation.OperationList, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			boardID, err := common.RequiredInt(args, "board_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			stacks, err := client.ListStacks(ctx, boardID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list stacks: %v", err)), nil
			}

			result, _ := json.MarshalIndent(stacks, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// Register card creation only if not in read-only mode
	if !readOnly {
		// Create card tool
		createCardTool := mcp.NewTool("nc_deck_create_card",
			mcp.WithDescription("Create a new card in a stack of a Deck board"),
			mcp.WithNumber("board_id",
				mcp.Required(),
				mcp.Description("The ID of the board"),
			),
			mcp.WithNumber("stack_id",
				mcp.Required(),
				mcp.Description("The ID of the stack to create the card in"),
			),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("The card title"),
			),
			mcp.WithString("description",
				mcp.Description("The card description (Markdown)"),
			),
		)

		s.AddTool(createCardTool, common.InstrumentedToolHandlerWithApp("nc_deck_create_card", instrumentation.AppDeck, instrumentation.OperationCreate, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				boardID, err := common.RequiredInt(args, "board_id")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				stackID, err := common.RequiredInt(args, "stack_id")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				title, err := common.RequiredString(args, "title")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				card, err := client.CreateCard(ctx, boardID, stackID, title, common.OptionalString(args, "description"))
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to create card: %v", err)), nil
				}

				result, _ := json.MarshalIndent(card, "", "  ")
				return mcp.NewToolResultText(fmt.Sprintf("Card created successfully:\n%s", string(result))), nil
			}))))
	}

	return nil
}
