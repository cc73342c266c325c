package ops

import (
	"context"
	"database/sql"

	"github.com/jmorneau/ladle/internal/db"
)

// FavoriteInput contains parameters for the Favorite operation.
type FavoriteInput struct {
	Name string
	Set  *bool // nil toggles the current value
}

// FavoriteOutput contains the result of the Favorite operation.
type FavoriteOutput struct {
	Name     string `json:"name"`
	Favorite bool   `json:"favorite"`
}

// Favorite toggles or explicitly sets a recipe's favorite flag.
func Favorite(ctx context.Context, database *sql.DB, input FavoriteInput) (*FavoriteOutput, error) {
	nameNorm, err := ValidateName(input.Name)
	if err != nil {
		return nil, err
	}

	r, err := db.GetByName(ctx, database, nameNorm)
	if err != nil {
		return nil, err
	}

	if input.Set != nil {
		r.Favorite = *input.Set
	} else {
		r.Favorite = !r.Favorite
	}

	if err := db.UpdateByID(ctx, database, r); err != nil {
		return nil, err
	}

	return &FavoriteOutput{
		Name:     r.Name,
		Favorite: r.Favorite,
	}, nil
}
