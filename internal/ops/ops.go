// Package ops implements the catalog operations behind the CLI commands.
// Each operation takes an Input struct and returns an Output struct, keeping
// the command layer free of business logic.
package ops

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// ValidateName checks a recipe name and returns its normalized form, used
// for case-insensitive lookups.
func ValidateName(name string) (string, error) {
	norm := recipe.Normalize(name)
	if norm == "" {
		return "", errors.NewInvalidRequest("name is required")
	}
	return norm, nil
}

// validateRating checks that a rating sits on the 0-5 scale.
func validateRating(rating int) error {
	if rating < 0 || rating > recipe.MaxRating {
		return errors.NewInvalidRequest(fmt.Sprintf("rating must be between 0 and %d", recipe.MaxRating))
	}
	return nil
}

// validateTimes checks that prep and cook times are non-negative.
func validateTimes(prep, cook int) error {
	if prep < 0 {
		return errors.NewInvalidRequest("prep_time must not be negative")
	}
	if cook < 0 {
		return errors.NewInvalidRequest("cook_time must not be negative")
	}
	return nil
}

// validateIngredients rejects ingredient entries without an item name.
func validateIngredients(ingredients []recipe.Ingredient) error {
	for i, ing := range ingredients {
		if strings.TrimSpace(ing.Item) == "" {
			return errors.NewInvalidRequest(fmt.Sprintf("ingredient %d is missing an item", i+1))
		}
	}
	return nil
}

// cleanOptionalString trims an optional string, returning nil when empty.
func cleanOptionalString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// generateULID generates a new ULID.
func generateULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
