package nextcloud

import (
	"context"
	"fmt"
	"net/http"
)

const deckAPI = "index.php/apps/deck/api/v1.0"

// ListBoards lists the Deck boards visible to the user.
func (c *Client) ListBoards(ctx context.Context) ([]Board, error) {
	var boards []Board
	if err := c.doJSON(ctx, http.MethodGet, deckAPI+"/boards", nil, nil, &boards); err != nil {
		return nil, fmt.Errorf("failed to list boards: %w", err)
	}
	return boards, nil
}

// GetBoard retrieves a Deck board by ID.
func (c *Client) GetBoard(ctx context.Context, boardID int) (*Board, error) {
	var board Board
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/boards/%d", deckAPI, boardID), nil, nil, &board); err != nil {
		return nil, fmt.Errorf("failed to get board %d: %w", boardID, err)
	}
	return &board, nil
}

// ListStacks lists the stacks of a board, including their cards.
func (c *Client) ListStacks(ctx context.Context, boardID int) ([]Stack, error) {
	var stacks []Stack
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/boards/%d/stacks", deckAPI, boardID), nil, nil, &stacks); err != nil {
		return nil, fmt.Errorf("failed to list stacks of board %d: %w", boardID, err)
	}
	return stacks, nil
}

// CreateCard creates a card in a stack of a board.
func (c *Client) CreateCard(ctx context.Context, boardID, stackID int, title, description string) (*Card, error) {
	if title == "" {
		return nil, fmt.Errorf("card title is required")
	}

	input := CardInput{
		Title:       title,
		Description: description,
		Type:        "plain",
		Order:       999,
	}

	var card Card
	p := fmt.Sprintf("%s/boards/%d/stacks/%d/cards", deckAPI, boardID, stackID)
	if err := c.doJSON(ctx, http.MethodPost, p, nil, input, &card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return &card, nil
}
