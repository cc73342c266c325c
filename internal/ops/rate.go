package ops

import (
	"context"
	"database/sql"

	"github.com/jmorneau/ladle/internal/db"
)

// RateInput contains parameters for the Rate operation.
type RateInput struct {
	Name   string
	Rating int // 0-5; 0 clears the rating
}

// RateOutput contains the result of the Rate operation.
type RateOutput struct {
	Name          string `json:"name"`
	Rating        int    `json:"rating"`
	RatingDisplay string `json:"rating_display"`
}

// Rate sets a recipe's rating. A rating of 0 clears it.
func Rate(ctx context.Context, database *sql.DB, input RateInput) (*RateOutput, error) {
	nameNorm, err := ValidateName(input.Name)
	if err != nil {
		return nil, err
	}
	if err := validateRating(input.Rating); err != nil {
		return nil, err
	}

	r, err := db.GetByName(ctx, database, nameNorm)
	if err != nil {
		return nil, err
	}

	r.Rating = input.Rating
	if err := db.UpdateByID(ctx, database, r); err != nil {
		return nil, err
	}

	return &RateOutput{
		Name:          r.Name,
		Rating:        r.Rating,
		RatingDisplay: r.RatingDisplay(),
	}, nil
}
