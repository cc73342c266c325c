package ops

import (
	"context"
	"database/sql"

	"github.com/jmorneau/ladle/internal/db"
	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
	"github.com/jmorneau/ladle/internal/shopping"
)

// ShoppingInput contains parameters for the Shopping operation.
type ShoppingInput struct {
	Names []string // recipe names; unknown names are skipped
}

// ShoppingOutput contains the built shopping list.
type ShoppingOutput struct {
	List    shopping.List `json:"list"`
	Text    string        `json:"text"`
	Found   []string      `json:"found"`
	Missing []string      `json:"missing"`
}

// Shopping aggregates the ingredients of the named recipes into a shopping
// list. Names that match no recipe are reported in Missing and contribute
// nothing to the list.
func Shopping(ctx context.Context, database *sql.DB, input ShoppingInput) (*ShoppingOutput, error) {
	if len(input.Names) == 0 {
		return nil, errors.NewInvalidRequest("at least one recipe name is required")
	}

	// One transaction so the list and the found/missing split see the same
	// catalog state.
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	list, err := shopping.Build(ctx, db.RecipeSource{Q: tx}, input.Names)
	if err != nil {
		return nil, err
	}

	found := []string{}
	missing := []string{}
	for _, name := range input.Names {
		exists, err := db.CheckNameExists(ctx, tx, recipe.Normalize(name))
		if err != nil {
			return nil, err
		}
		if exists {
			found = append(found, name)
		} else {
			missing = append(missing, name)
		}
	}

	return &ShoppingOutput{
		List:    list,
		Text:    shopping.Format(list),
		Found:   found,
		Missing: missing,
	}, nil
}
