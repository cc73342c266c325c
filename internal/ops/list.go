package ops

import (
	"context"
	"database/sql"

	"github.com/jmorneau/ladle/internal/db"
	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Category  *string // optional filter, case-insensitive
	Favorites bool    // only favorites
	TopRated  bool    // only rated recipes; defaults the sort to rating
	Sort      string  // name (default), updated, rating
	Limit     int     // default: 20, max: 100
	Offset    int     // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []recipe.Summary `json:"items"`
	Pagination Pagination       `json:"pagination"`
	Sort       string           `json:"sort"`
}

// List retrieves recipe summaries with optional filters and pagination.
func List(ctx context.Context, database *sql.DB, input ListInput) (*ListOutput, error) {
	filters := db.ListFilters{
		Category:  cleanOptionalString(input.Category),
		Favorites: input.Favorites,
		RatedOnly: input.TopRated,
	}

	sort := db.SortByName
	sortLabel := "name_asc"
	switch input.Sort {
	case "", "name":
	case "updated":
		sort = db.SortByUpdated
		sortLabel = "updated_at_desc"
	case "rating":
		sort = db.SortByRating
		sortLabel = "rating_desc"
	default:
		return nil, errors.NewInvalidRequest("sort must be one of: name, updated, rating")
	}
	if input.TopRated && input.Sort == "" {
		sort = db.SortByRating
		sortLabel = "rating_desc"
	}

	// Apply limit defaults and bounds
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	// Ensure offset is non-negative
	offset := max(input.Offset, 0)

	summaries, total, err := db.List(ctx, database, filters, sort, limit, offset)
	if err != nil {
		return nil, err
	}

	// Ensure we return an empty array rather than nil
	if summaries == nil {
		summaries = []recipe.Summary{}
	}

	hasMore := offset+len(summaries) < total

	return &ListOutput{
		Items: summaries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: hasMore,
			Total:   total,
		},
		Sort: sortLabel,
	}, nil
}
