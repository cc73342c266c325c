package ops

import (
	"context"
	"database/sql"

	"github.com/jmorneau/ladle/internal/db"
)

// DeleteInput contains parameters for the Delete operation.
type DeleteInput struct {
	Name string
}

// DeleteOutput contains the result of the Delete operation.
type DeleteOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
	Name    string `json:"name"`
}

// Delete removes a recipe permanently.
func Delete(ctx context.Context, database *sql.DB, input DeleteInput) (*DeleteOutput, error) {
	nameNorm, err := ValidateName(input.Name)
	if err != nil {
		return nil, err
	}

	r, err := db.GetByName(ctx, database, nameNorm)
	if err != nil {
		return nil, err
	}

	if err := db.DeleteByID(ctx, database, r.ID); err != nil {
		return nil, err
	}

	return &DeleteOutput{
		Deleted: true,
		ID:      r.ID,
		Name:    r.Name,
	}, nil
}
