package ops

import (
	"context"
	"database/sql"

	"github.com/jmorneau/ladle/internal/db"
	"github.com/jmorneau/ladle/internal/recipe"
)

// GetInput contains parameters for the Get operation.
type GetInput struct {
	Name string
}

// GetOutput contains the result of the Get operation.
type GetOutput struct {
	recipe.Recipe // embedded (copy, not pointer)
}

// Get retrieves a recipe by name, matched case-insensitively.
func Get(ctx context.Context, database *sql.DB, input GetInput) (*GetOutput, error) {
	nameNorm, err := ValidateName(input.Name)
	if err != nil {
		return nil, err
	}

	r, err := db.GetByName(ctx, database, nameNorm)
	if err != nil {
		return nil, err
	}

	return &GetOutput{Recipe: *r}, nil
}
