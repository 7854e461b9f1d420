package nextcloud

import (
	"context"
	"fmt"
	"net/http"
)

const cookbookAPI = "index.php/apps/cookbook/api/v1"

// ListRecipes lists the recipes known to the Cookbook app.
func (c *Client) ListRecipes(ctx context.Context) ([]RecipeSummary, error) {
	var recipes []RecipeSummary
	if err := c.doJSON(ctx, http.MethodGet, cookbookAPI+"/recipes", nil, nil, &recipes); err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// GetRecipe retrieves a full recipe by ID.
func (c *Client) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	if id == "" {
		return nil, fmt.Errorf("recipe id is required")
	}
	var recipe Recipe
	if err := c.doJSON(ctx, http.MethodGet, cookbookAPI+"/recipes/"+id, nil, nil, &recipe); err != nil {
		return nil, fmt.Errorf("failed to get recipe %s: %w", id, err)
	}
	return &recipe, nil
}
