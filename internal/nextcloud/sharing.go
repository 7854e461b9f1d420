package nextcloud

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

const sharesAPI = "ocs/v2.php/apps/files_sharing/api/v1/shares"

// ListShares lists the shares created by the user. If path is non-empty,
// only shares of that file or directory are returned.
func (c *Client) ListShares(ctx context.Context, path string) ([]Share, error) {
	query := url.Values{}
	if path != "" {
		query.Set("path", path)
	}

	var shares []Share
	if err := c.ocsGet(ctx, sharesAPI, query, &shares); err != nil {
		return nil, fmt.Errorf("failed to list shares: %w", err)
	}
	return shares, nil
}

// CreateShare shares a file or directory. For user and group shares,
// shareWith names the recipient; link shares ignore it.
func (c *Client) CreateShare(ctx context.Context, path string, shareType int, shareWith string, permissions int) (*Share, error) {
	if path == "" {
		return nil, fmt.Errorf("share path is required")
	}
	if shareType != ShareTypeLink && shareWith == "" {
		return nil, fmt.Errorf("shareWith is required for non-link shares")
	}

	form := url.Values{}
	form.Set("path", path)
	form.Set("shareType", strconv.Itoa(shareType))
	if shareWith != "" {
		form.Set("shareWith", shareWith)
	}
	if permissions > 0 {
		form.Set("permissions", strconv.Itoa(permissions))
	}

	var share Share
	if err := c.ocsDo(ctx, http.MethodPost, sharesAPI, nil, form, &share); err != nil {
		return nil, fmt.Errorf("failed to create share: %w", err)
	}
	return &share, nil
}

// DeleteShare removes a share by ID.
func (c *Client) DeleteShare(ctx context.Context, shareID string) error {
	if shareID == "" {
		return fmt.Errorf("share id is required")
	}
	if err := c.ocsDo(ctx, http.MethodDelete, sharesAPI+"/"+shareID, nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete share %s: %w", shareID, err)
	}
	return nil
}
