package webdav_tools

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

// RegisterFilesTools registers all Files (WebDAV) tools with the MCP server.
// Write operations are only registered when readOnly is false.
func RegisterFilesTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List files tool (read-only, always available)
	listFilesTool := mcp.NewTool("nc_files_list",
		mcp.WithDescription("List files and directories in the user's storage"),
		mcp.WithString("path",
			mcp.Description("Directory to list, relative to the user's root (default: root)"),
		),
	)

	s.AddTool(listFilesTool, common.InstrumentedToolHandlerWithApp("nc_files_list", instrumentation.AppFiles, instrumentation.OperationList, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			dir := common.OptionalString(args, "path")

			files, err := client.ListFiles(ctx, dir)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list files: %v", err)), nil
			}

			result, _ := json.MarshalIndent(files, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// Read file tool
	readFileTool := mcp.NewTool("nc_files_read",
		mcp.WithDescription("Read the content of a file from the user's storage"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the file to read, relative to the user's root"),
		),
	)

	s.AddTool(readFileTool, common.InstrumentedToolHandlerWithApp("nc_files_read", instrumentation.AppFiles, instrumentation.OperationGet, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			path, err := common.RequiredString(args, "path")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			data, err := client.ReadFile(ctx, path)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to read file: %v", err)), nil
			}

			return mcp.NewToolResultText(string(data)), nil
		})))

	// Register write/delete/mkdir tools only if not in read-only mode
	if !readOnly {
		// Write file tool
		writeFileTool := mcp.NewTool("nc_files_write",
			mcp.WithDescription("Write content to a file, creating or overwriting it"),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Path of the file to write, relative to the user's root"),
			),
			mcp.WithString("content",
				mcp.Required(),
				mcp.Description("The content to write"),
			),
		)

		s.AddTool(writeFileTool, common.InstrumentedToolHandlerWithApp("nc_files_write", instrumentation.AppFiles, instrumentation.OperationCreate, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				path, err := common.RequiredString(args, "path")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				content, ok := args["content"].(string)
				if !ok {
					return mcp.NewToolResultError("content is required"), nil
				}

				if err := client.WriteFile(ctx, path, []byte(content)); err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to write file: %v", err)), nil
				}

				return mcp.NewToolResultText(fmt.Sprintf("File %s written successfully (%d bytes)", path, len(content))), nil
			}))))

		// Create directory tool
		createDirectoryTool := mcp.NewTool("nc_files_mkdir",
			mcp.WithDescription("Create a directory in the user's storage"),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Path of the directory to create, relative to the user's root"),
			),
		)

		s.AddTool(createDirectoryTool, common.InstrumentedToolHandlerWithApp("nc_files_mkdir", instrumentation.AppFiles, instrumentation.OperationCreate, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				path, err := common.RequiredString(args, "path")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				if err := client.CreateDirectory(ctx, path); err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to create directory: %v", err)), nil
				}

				return mcp.NewToolResultText(fmt.Sprintf("Directory %s created successfully", path)), nil
			}))))

		// Delete file tool
		deleteFileTool := mcp.NewTool("nc_files_delete",
			mcp.WithDescription("Delete a file or directory from the user's storage"),
			mcp.WithString("path",
				mcp.Required(),
				mcp.Description("Path of the file or directory to delete, relative to the user's root"),
			),
		)

		s.AddTool(deleteFileTool, common.InstrumentedToolHandlerWithApp("nc_files_delete", instrumentation.AppFiles, instrumentation.OperationDelete, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				path, err := common.RequiredString(args, "path")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				if err := client.DeleteFile(ctx, path); err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to delete: %v", err)), nil
				}

				return mcp.NewToolResultText(fmt.Sprintf("%s deleted successfully", path)), nil
			}))))
	}

	return nil
}
