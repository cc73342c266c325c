package ops

import (
	"context"
	"database/sql"

	"github.com/jmorneau/ladle/internal/db"
	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
)

// ScaleInput contains parameters for the Scale operation.
type ScaleInput struct {
	Name     string
	Servings int // target serving count, must be positive
}

// ScaleOutput contains a scaled copy of the recipe. The result is never
// persisted; the stored recipe keeps its original amounts.
type ScaleOutput struct {
	recipe.Recipe // embedded (scaled copy)

	OriginalServings int `json:"original_servings"`
}

// Scale loads a recipe and linearly scales its numeric ingredient amounts
// to the target serving count.
func Scale(ctx context.Context, database *sql.DB, input ScaleInput) (*ScaleOutput, error) {
	nameNorm, err := ValidateName(input.Name)
	if err != nil {
		return nil, err
	}
	if input.Servings <= 0 {
		return nil, errors.NewInvalidRequest("servings must be positive")
	}

	r, err := db.GetByName(ctx, database, nameNorm)
	if err != nil {
		return nil, err
	}

	scaled := recipe.Scale(*r, input.Servings)

	return &ScaleOutput{
		Recipe:           scaled,
		OriginalServings: r.Servings,
	}, nil
}
