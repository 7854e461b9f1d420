package calendar_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/nextcloud-mcp/internal/instrumentation"
	"github.com/teemow/nextcloud-mcp/internal/nextcloud"
	"github.com/teemow/nextcloud-mcp/internal/server"
	"github.com/teemow/nextcloud-mcp/internal/tools/common"
)

// RegisterCalendarTools registers all Calendar (CalDAV) tools with the MCP
// server. Write operations are only registered when readOnly is false.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List calendars tool (read-only, always available)
	listCalendarsTool := mcp.NewTool("nc_calendar_list_calendars",
		mcp.WithDescription("List all calendars of the authenticated user"),
	)

	s.AddTool(listCalendarsTool, common.InstrumentedToolHandlerWithApp("nc_calendar_list_calendars", instrumentation.AppCalendar, instrumentation.OperationList, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			calendars, err := client.ListCalendars(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list calendars: %v", err)), nil
			}

			result, _ := json.MarshalIndent(calendars, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// List events tool
	listEventsTool := mcp.NewTool("nc_calendar_list_events",
		mcp.WithDescription("List events in a calendar"),
		mcp.WithString("calendar",
			mcp.Required(),
			mcp.Description("The name of the calendar to list events from"),
		),
	)

	s.AddTool(listEventsTool, common.InstrumentedToolHandlerWithApp("nc_calendar_list_events", instrumentation.AppCalendar, instrumentation.OperationList, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			calendar, err := common.RequiredString(args, "calendar")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			events, err := client.ListEvents(ctx, calendar)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list events: %v", err)), nil
			}

			result, _ := json.MarshalIndent(events, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// Register create/delete event tools only if not in read-only mode
	if !readOnly {
		// Create event tool
		createEventTool := mcp.NewTool("nc_calendar_create_event",
			mcp.WithDescription("Create a new event in a calendar"),
			mcp.WithString("calendar",
				mcp.Required(),
				mcp.Description("The name of the calendar to create the event in"),
			),
			mcp.WithString("summary",
				mcp.Required(),
				mcp.Description("The event title"),
			),
			mcp.WithString("start",
				mcp.Required(),
				mcp.Description("Event start time (RFC3339 format)"),
			),
			mcp.WithString("end",
				mcp.Required(),
				mcp.Description("Event end time (RFC3339 format)"),
			),
			mcp.WithString("description",
				mcp.Description("Longer event description"),
			),
			mcp.WithString("location",
				mcp.Description("Event location"),
			),
		)

		s.AddTool(createEventTool, common.InstrumentedToolHandlerWithApp("nc_calendar_create_event", instrumentation.AppCalendar, instrumentation.OperationCreate, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				calendar, err := common.RequiredString(args, "calendar")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				summary, err := common.RequiredString(args, "summary")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				start, err := common.RequiredString(args, "start")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				end, err := common.RequiredString(args, "end")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				if _, err := time.Parse(time.RFC3339, start); err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Invalid start time: %v", err)), nil
				}
				if _, err := time.Parse(time.RFC3339, end); err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Invalid end time: %v", err)), nil
				}

				input := nextcloud.EventInput{
					Summary:     summary,
					Description: common.OptionalString(args, "description"),
					Location:    common.OptionalString(args, "location"),
					Start:       start,
					End:         end,
				}

				event, err := client.CreateEvent(ctx, calendar, input)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to create event: %v", err)), nil
				}

				result, _ := json.MarshalIndent(event, "", "  ")
				return mcp.NewToolResultText(fmt.Sprintf("Event created successfully:\n%s", string(result))), nil
			}))))

		// Delete event tool
		deleteEventTool := mcp.NewTool("nc_calendar_delete_event",
			mcp.WithDescription("Delete an event from a calendar"),
			mcp.WithString("calendar",
				mcp.Required(),
				mcp.Description("The name of the calendar the event belongs to"),
			),
			mcp.WithString("uid",
				mcp.Required(),
				mcp.Description("The UID of the event to delete"),
			),
		)

		s.AddTool(deleteEventTool, common.InstrumentedToolHandlerWithApp("nc_calendar_delete_event", instrumentation.AppCalendar, instrumentation.OperationDelete, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				calendar, err := common.RequiredString(args, "calendar")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				uid, err := common.RequiredString(args, "uid")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				if err := client.DeleteEvent(ctx, calendar, uid); err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to delete event: %v", err)), nil
				}

				return mcp.NewToolResultText(fmt.Sprintf("Event %s deleted successfully", uid)), nil
			}))))
	}

	return nil
}
