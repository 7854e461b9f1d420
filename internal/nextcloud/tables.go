package nextcloud

import (
	"context"
	"fmt"
	"net/http"
)

const tablesAPI = "index.php/apps/tables/api/1"

// ListTables lists the Tables tables visible to the user.
func (c *Client) ListTables(ctx context.Context) ([]Table, error) {
	var tables []Table
	if err := c.doJSON(ctx, http.MethodGet, tablesAPI+"/tables", nil, nil, &tables); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// GetTable retrieves a table by ID.
func (c *Client) GetTable(ctx context.Context, tableID int) (*Table, error) {
	var table Table
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/tables/%d", tablesAPI, tableID), nil, nil, &table); err != nil {
		return nil, fmt.Errorf("failed to get table %d: %w", tableID, err)
	}
	return &table, nil
}

// ListRows lists the rows of a table.
func (c *Client) ListRows(ctx context.Context, tableID int) ([]Row, error) {
	var rows []Row
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/tables/%d/rows", tablesAPI, tableID), nil, nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to list rows of table %d: %w", tableID, err)
	}
	return rows, nil
}
