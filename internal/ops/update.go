package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmorneau/ladle/internal/db"
	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
)

// UpdateInput contains parameters for the Update operation.
type UpdateInput struct {
	// Name addresses the recipe to update
	Name string

	// Editable fields (nil = keep current value). Rating and favorite
	// status are managed by the Rate and Favorite operations.
	NewName      *string
	Ingredients  *[]recipe.Ingredient
	Instructions *[]string
	PrepTime     *int
	CookTime     *int
	Servings     *int
	Category     *string
}

// UpdateOutput contains the result of the Update operation.
type UpdateOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Update modifies an existing recipe. Renaming onto a name another recipe
// holds fails with NAME_ALREADY_EXISTS.
func Update(ctx context.Context, database *sql.DB, input UpdateInput) (*UpdateOutput, error) {
	nameNorm, err := ValidateName(input.Name)
	if err != nil {
		return nil, err
	}

	// Validate at least one editable field is provided
	if input.NewName == nil && input.Ingredients == nil && input.Instructions == nil &&
		input.PrepTime == nil && input.CookTime == nil && input.Servings == nil &&
		input.Category == nil {
		return nil, errors.NewInvalidRequest("at least one editable field must be provided")
	}

	r, err := db.GetByName(ctx, database, nameNorm)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if input.NewName != nil {
		if _, err := ValidateName(*input.NewName); err != nil {
			return nil, err
		}
		r.Name = strings.TrimSpace(*input.NewName)
	}
	if input.Ingredients != nil {
		if err := validateIngredients(*input.Ingredients); err != nil {
			return nil, err
		}
		r.Ingredients = *input.Ingredients
	}
	if input.Instructions != nil {
		r.Instructions = *input.Instructions
	}
	if input.PrepTime != nil {
		r.PrepTime = *input.PrepTime
	}
	if input.CookTime != nil {
		r.CookTime = *input.CookTime
	}
	if err := validateTimes(r.PrepTime, r.CookTime); err != nil {
		return nil, err
	}
	if input.Servings != nil {
		if *input.Servings < 0 {
			return nil, errors.NewInvalidRequest("servings must not be negative")
		}
		r.Servings = *input.Servings
	}
	if input.Category != nil {
		r.Category = strings.TrimSpace(*input.Category)
	}

	if err := db.UpdateByID(ctx, database, r); err != nil {
		return nil, err
	}

	return &UpdateOutput{
		ID:   r.ID,
		Name: r.Name,
	}, nil
}
