package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/jmorneau/ladle/internal/db"
	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
)

// AddInput contains parameters for the Add operation.
type AddInput struct {
	Name         string // required, unique up to normalization
	Ingredients  []recipe.Ingredient
	Instructions []string
	PrepTime     int  // minutes
	CookTime     int  // minutes
	Servings     *int // default: 1
	Category     string
	Rating       int // 0-5, 0 = unrated
	Favorite     bool
}

// AddOutput contains the result of the Add operation.
type AddOutput struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Add creates a new recipe. The name must not collide with an existing
// recipe's name under case-insensitive matching.
func Add(ctx context.Context, database *sql.DB, input AddInput) (*AddOutput, error) {
	if _, err := ValidateName(input.Name); err != nil {
		return nil, err
	}
	if err := validateTimes(input.PrepTime, input.CookTime); err != nil {
		return nil, err
	}
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}
	if err := validateIngredients(input.Ingredients); err != nil {
		return nil, err
	}

	// Apply defaults
	servings := 1
	if input.Servings != nil {
		if *input.Servings < 0 {
			return nil, errors.NewInvalidRequest("servings must not be negative")
		}
		servings = *input.Servings
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	now := time.Now().Unix()
	r := &recipe.Recipe{
		ID:           id,
		Name:         strings.TrimSpace(input.Name),
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		PrepTime:     input.PrepTime,
		CookTime:     input.CookTime,
		Servings:     servings,
		Category:     strings.TrimSpace(input.Category),
		Rating:       input.Rating,
		Favorite:     input.Favorite,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := db.Insert(ctx, database, r); err != nil {
		return nil, err
	}

	return &AddOutput{
		ID:   id,
		Name: r.Name,
	}, nil
}
