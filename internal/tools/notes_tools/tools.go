package notes_tools

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

// RegisterNotesTools registers all Notes-related tools with the MCP server.
// Write operations are only registered when readOnly is false.
func RegisterNotesTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List notes tool (read-only, always available)
	listNotesTool := mcp.NewTool("nc_notes_list",
		mcp.WithDescription("List all notes of the authenticated user"),
	)

	s.AddTool(listNotesTool, common.InstrumentedToolHandlerWithApp("nc_notes_list", instrumentation.AppNotes, instrumentation.OperationList, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			notes, err := client.ListNotes(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list notes: %v", err)), nil
			}

			result, _ := json.MarshalIndent(notes, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// Get note tool
	getNoteTool := mcp.NewTool("nc_notes_get",
		mcp.WithDescription("Get a single note by its ID"),
		mcp.WithNumber("note_id",
			mcp.Required(),
			mcp.Description("The ID of the note to retrieve"),
		),
	)

	s.AddTool(getNoteTool, common.InstrumentedToolHandlerWithApp("nc_notes_get", instrumentation.AppNotes, instrumentation.OperationGet, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			noteID, err := common.RequiredInt(args, "note_id")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			note, err := client.GetNote(ctx, noteID)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to get note: %v", err)), nil
			}

			result, _ := json.MarshalIndent(note, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// Search notes tool
	searchNotesTool := mcp.NewTool("nc_notes_search",
		mcp.WithDescription("Search notes by a case-insensitive substring of title, content, or category"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The text to search for"),
		),
	)

	s.AddTool(searchNotesTool, common.InstrumentedToolHandlerWithApp("nc_notes_search", instrumentation.AppNotes, instrumentation.OperationSearch, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			query, err := common.RequiredString(args, "query")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			notes, err := client.SearchNotes(ctx, query)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to search notes: %v", err)), nil
			}

			result, _ := json.MarshalIndent(notes, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// Register create/update/delete tools only if not in read-only mode
	if !readOnly {
		// Create note tool
		createNoteTool := mcp.NewTool("nc_notes_create",
			mcp.WithDescription("Create a new note"),
			mcp.WithString("title",
				mcp.Required(),
				mcp.Description("The title of the new note"),
			),
			mcp.WithString("content",
				mcp.Description("The Markdown content of the note"),
			),
			mcp.WithString("category",
				mcp.Description("The category (folder) to file the note under"),
			),
		)

		s.AddTool(createNoteTool, common.InstrumentedToolHandlerWithApp("nc_notes_create", instrumentation.AppNotes, instrumentation.OperationCreate, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				title, err := common.RequiredString(args, "title")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				input := nextcloud.NoteInput{
					Title:    title,
					Content:  common.OptionalString(args, "content"),
					Category: common.OptionalString(args, "category"),
				}

				note, err := client.CreateNote(ctx, input)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to create note: %v", err)), nil
				}

				result, _ := json.MarshalIndent(note, "", "  ")
				return mcp.NewToolResultText(fmt.Sprintf("Note created successfully:\n%s", string(result))), nil
			}))))

		// Update note tool
		updateNoteTool := mcp.NewTool("nc_notes_update",
			mcp.WithDescription("Update an existing note"),
			mcp.WithNumber("note_id",
				mcp.Required(),
				mcp.Description("The ID of the note to update"),
			),
			mcp.WithString("title",
				mcp.Description("New title for the note"),
			),
			mcp.WithString("content",
				mcp.Description("New Markdown content for the note"),
			),
			mcp.WithString("category",
				mcp.Description("New category for the note"),
			),
		)

		s.AddTool(updateNoteTool, common.InstrumentedToolHandlerWithApp("nc_notes_update", instrumentation.AppNotes, instrumentation.OperationUpdate, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				noteID, err := common.RequiredInt(args, "note_id")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				input := nextcloud.NoteInput{
					Title:    common.OptionalString(args, "title"),
					Content:  common.OptionalString(args, "content"),
					Category: common.OptionalString(args, "category"),
				}

				note, err := client.UpdateNote(ctx, noteID, input)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to update note: %v", err)), nil
				}

				result, _ := json.MarshalIndent(note, "", "  ")
				return mcp.NewToolResultText(fmt.Sprintf("Note updated successfully:\n%s", string(result))), nil
			}))))

		// Delete note tool
		deleteNoteTool := mcp.NewTool("nc_notes_delete",
			mcp.WithDescription("Delete a note"),
			mcp.WithNumber("note_id",
				mcp.Required(),
				mcp.Description("The ID of the note to delete"),
			),
		)

		s.AddTool(deleteNoteTool, common.InstrumentedToolHandlerWithApp("nc_notes_delete", instrumentation.AppNotes, instrumentation.OperationDelete, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				noteID, err := common.RequiredInt(args, "note_id")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				if err := client.DeleteNote(ctx, noteID); err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to delete note: %v", err)), nil
				}

				return mcp.NewToolResultText(fmt.Sprintf("Note %d deleted successfully", noteID)), nil
			}))))
	}

	return nil
}
