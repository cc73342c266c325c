package db

import (
	"context"

	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
)

// RecipeSource adapts the query layer to the shopping list's Source
// interface: absent names come back as nil without an error.
type RecipeSource struct {
	Q Querier
}

// FindByName resolves a recipe case-insensitively by display name.
func (s RecipeSource) FindByName(ctx context.Context, name string) (*recipe.Recipe, error) {
	r, err := GetByName(ctx, s.Q, recipe.Normalize(name))
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}
