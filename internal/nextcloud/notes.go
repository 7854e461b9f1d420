package nextcloud

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

const notesAPI = "index.php/apps/notes/api/v1/notes"

// ListNotes lists all notes of the authenticated user.
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := c.doJSON(ctx, http.MethodGet, notesAPI, nil, nil, &notes); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// GetNote retrieves a single note by ID.
func (c *Client) GetNote(ctx context.Context, id int) (*Note, error) {
	var note Note
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", notesAPI, id), nil, nil, &note); err != nil {
		return nil, fmt.Errorf("failed to get note %d: %w", id, err)
	}
	return &note, nil
}

// CreateNote creates a new note.
func (c *Client) CreateNote(ctx context.Context, input NoteInput) (*Note, error) {
	if input.Title == "" && input.Content == "" {
		return nil, fmt.Errorf("note title or content is required")
	}
	var note Note
	if err := c.doJSON(ctx, http.MethodPost, notesAPI, nil, input, &note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &note, nil
}

// UpdateNote updates an existing note. Empty input fields keep their
// current value on the server.
func (c *Client) UpdateNote(ctx context.Context, id int, input NoteInput) (*Note, error) {
	var note Note
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", notesAPI, id), nil, input, &note); err != nil {
		return nil, fmt.Errorf("failed to update note %d: %w", id, err)
	}
	return &note, nil
}

// DeleteNote deletes a note by ID.
func (c *Client) DeleteNote(ctx context.Context, id int) error {
	if err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", notesAPI, id), nil, nil, nil); err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	return nil
}

// SearchNotes returns the notes whose title, category or content contains
// the query, case-insensitively. The Notes API has no server-side search,
// so the filter runs over the full listing.
func (c *Client) SearchNotes(ctx context.Context, query string) ([]Note, error) {
	notes, err := c.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	var matches []Note
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Category), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			matches = append(matches, n)
		}
	}
	return matches, nil
}
