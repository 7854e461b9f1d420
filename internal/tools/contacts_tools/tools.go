package contacts_tools

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

// RegisterContactsTools registers all Contacts (CardDAV) tools with the MCP
// server. Write operations are only registered when readOnly is false.
func RegisterContactsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List address books tool (read-only, always available)
	listAddressBooksTool := mcp.NewTool("nc_contacts_list_books",
		mcp.WithDescription("List all address books of the authenticated user"),
	)

	s.AddTool(listAddressBooksTool, common.InstrumentedToolHandlerWithApp("nc_contacts_list_books", instrumentation.AppContacts, instrumentation.OperationList, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			books, err := client.ListAddressBooks(ctx)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list address books: %v", err)), nil
			}

			result, _ := json.MarshalIndent(books, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// List contacts tool
	listContactsTool := mcp.NewTool("nc_contacts_list",
		mcp.WithDescription("List contacts in an address book"),
		mcp.WithString("address_book",
			mcp.Required(),
			mcp.Description("The name of the address book to list contacts from"),
		),
	)

	s.AddTool(listContactsTool, common.InstrumentedToolHandlerWithApp("nc_contacts_list", instrumentation.AppContacts, instrumentation.OperationList, sc,
		common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
			book, err := common.RequiredString(args, "address_book")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			contacts, err := client.ListContacts(ctx, book)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to list contacts: %v", err)), nil
			}

			result, _ := json.MarshalIndent(contacts, "", "  ")
			return mcp.NewToolResultText(string(result)), nil
		})))

	// Register create/delete contact tools only if not in read-only mode
	if !readOnly {
		// Create contact tool
		createContactTool := mcp.NewTool("nc_contacts_create",
			mcp.WithDescription("Create a new contact in an address book"),
			mcp.WithString("address_book",
				mcp.Required(),
				mcp.Description("The name of the address book to create the contact in"),
			),
			mcp.WithString("full_name",
				mcp.Required(),
				mcp.Description("The contact's full name"),
			),
			mcp.WithString("email",
				mcp.Description("The contact's email address"),
			),
			mcp.WithString("phone",
				mcp.Description("The contact's phone number"),
			),
		)

		s.AddTool(createContactTool, common.InstrumentedToolHandlerWithApp("nc_contacts_create", instrumentation.AppContacts, instrumentation.OperationCreate, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				book, err := common.RequiredString(args, "address_book")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				fullName, err := common.RequiredString(args, "full_name")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				input := nextcloud.ContactInput{
					FullName: fullName,
					Email:    common.OptionalString(args, "email"),
					Phone:    common.OptionalString(args, "phone"),
				}

				contact, err := client.CreateContact(ctx, book, input)
				if err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to create contact: %v", err)), nil
				}

				result, _ := json.MarshalIndent(contact, "", "  ")
				return mcp.NewToolResultText(fmt.Sprintf("Contact created successfully:\n%s", string(result))), nil
			}))))

		// Delete contact tool
		deleteContactTool := mcp.NewTool("nc_contacts_delete",
			mcp.WithDescription("Delete a contact from an address book"),
			mcp.WithString("address_book",
				mcp.Required(),
				mcp.Description("The name of the address book the contact belongs to"),
			),
			mcp.WithString("uid",
				mcp.Required(),
				mcp.Description("The UID of the contact to delete"),
			),
		)

		s.AddTool(deleteContactTool, common.InstrumentedToolHandlerWithApp("nc_contacts_delete", instrumentation.AppContacts, instrumentation.OperationDelete, sc,
			common.RequireWrite(common.WithClient(sc, func(ctx context.Context, client *nextcloud.Client, args map[string]interface{}) (*mcp.CallToolResult, error) {
				book, err := common.RequiredString(args, "address_book")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				uid, err := common.RequiredString(args, "uid")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}

				if err := client.DeleteContact(ctx, book, uid); err != nil {
					return mcp.NewToolResultError(fmt.Sprintf("Failed to delete contact: %v", err)), nil
				}

				return mcp.NewToolResultText(fmt.Sprintf("Contact %s deleted successfully", uid)), nil
			}))))
	}

	return nil
}
