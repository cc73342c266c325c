package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmorneau/ladle/internal/db"
	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Name       *string // substring match on the recipe name
	Ingredient *string // substring match on ingredient items
	Category   *string // exact match
	MaxTime    *int    // ceiling on total minutes (prep + cook)
	Limit      int     // default: 20, max: 100
	Offset     int     // default: 0
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Items      []recipe.Summary `json:"items"`
	Pagination Pagination       `json:"pagination"`
	Sort       string           `json:"sort"`
}

// Search finds recipes matching every given filter. String matching is
// case-insensitive; filters combine with AND. Results come back in name
// order.
func Search(ctx context.Context, database *sql.DB, input SearchInput) (*SearchOutput, error) {
	name := cleanOptionalString(input.Name)
	ingredient := cleanOptionalString(input.Ingredient)
	category := cleanOptionalString(input.Category)

	if name == nil && ingredient == nil && category == nil && input.MaxTime == nil {
		return nil, errors.NewInvalidRequest("at least one search filter is required")
	}
	if input.MaxTime != nil && *input.MaxTime < 0 {
		return nil, errors.NewInvalidRequest("max_time must not be negative")
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

	// Ingredient and time filters need the full rows, so matching happens
	// here rather than in SQL. Rows arrive in name order already.
	recipes, err := db.ListAllFull(ctx, database)
	if err != nil {
		return nil, err
	}

	var matches []recipe.Summary
	for _, r := range recipes {
		if matchesFilters(r, name, ingredient, category, input.MaxTime) {
			matches = append(matches, r.ToSummary())
		}
	}

	total := len(matches)
	start := min(offset, total)
	end := min(start+limit, total)

	items := matches[start:end]
	if items == nil {
		items = []recipe.Summary{}
	}

	return &SearchOutput{
		Items: items,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: end < total,
			Total:   total,
		},
		Sort: "name_asc",
	}, nil
}

// matchesFilters reports whether r satisfies every non-nil filter.
func matchesFilters(r *recipe.Recipe, name, ingredient, category *string, maxTime *int) bool {
	if name != nil && !strings.Contains(strings.ToLower(r.Name), strings.ToLower(*name)) {
		return false
	}
	if ingredient != nil {
		needle := strings.ToLower(*ingredient)
		found := false
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing.Item), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if category != nil && !strings.EqualFold(r.Category, *category) {
		return false
	}
	if maxTime != nil && r.TotalTime() > *maxTime {
		return false
	}
	return true
}
