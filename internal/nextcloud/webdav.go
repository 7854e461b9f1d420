package nextcloud

import (
	"context"
	"fmt"
	"path"
	"time"
)

// filesPath builds the WebDAV path for the user's file storage.
func (c *Client) filesPath(ctx context.Context, p string) (string, error) {
	username, err := c.Username(ctx)
	if err != nil {
		return "", err
	}
	return path.Join("files", username, p), nil
}

// ListFiles lists the entries of a directory in the user's storage.
// Pass "" or "/" for the root directory.
func (c *Client) ListFiles(ctx context.Context, dir string) ([]FileInfo, error) {
	davPath, err := c.filesPath(ctx, dir)
	if err != nil {
		return nil, err
	}

	entries, err := c.dav.ReadDir(davPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", dir, err)
	}

	infos := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		info := FileInfo{
			Name:  e.Name(),
			Path:  path.Join(dir, e.Name()),
			Size:  e.Size(),
			IsDir: e.IsDir(),
		}
		if !e.ModTime().IsZero() {
			info.Modified = e.ModTime().UTC().Format(time.RFC3339)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ReadFile reads the contents of a file in the user's storage.
func (c *Client) ReadFile(ctx context.Context, filePath string) ([]byte, error) {
	davPath, err := c.filesPath(ctx, filePath)
	if err != nil {
		return nil, err
	}

	data, err := c.dav.Read(davPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", filePath, err)
	}
	return data, nil
}

// WriteFile writes data to a file in the user's storage, creating it if it
// does not exist.
func (c *Client) WriteFile(ctx context.Context, filePath string, data []byte) error {
	davPath, err := c.filesPath(ctx, filePath)
	if err != nil {
		return err
	}

	if err := c.dav.Write(davPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %q: %w", filePath, err)
	}
	return nil
}

// DeleteFile removes a file or directory from the user's storage.
func (c *Client) DeleteFile(ctx context.Context, filePath string) error {
	davPath, err := c.filesPath(ctx, filePath)
	if err != nil {
		return err
	}

	if err := c.dav.Remove(davPath); err != nil {
		return fmt.Errorf("failed to delete %q: %w", filePath, err)
	}
	return nil
}

// CreateDirectory creates a directory in the user's storage.
func (c *Client) CreateDirectory(ctx context.Context, dirPath string) error {
	davPath, err := c.filesPath(ctx, dirPath)
	if err != nil {
		return err
	}

	if err := c.dav.Mkdir(davPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dirPath, err)
	}
	return nil
}
