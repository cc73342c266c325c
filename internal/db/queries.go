package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
)

// Querier is the subset of *sql.DB and *sql.Tx the query functions use,
// so reads can run directly or inside a transaction snapshot.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// selectRecipe lists the columns scanRecipe expects, in order.
const selectRecipe = `
	SELECT id, name_raw, ingredients, instructions,
		prep_time, cook_time, servings, category, rating,
		favorite, created_at, updated_at
	FROM recipes
`

// Insert stores a new recipe in the database.
func Insert(ctx context.Context, q Querier, r *recipe.Recipe) error {
	ingredientsJSON, instructionsJSON, err := marshalContent(r)
	if err != nil {
		return errors.NewInternal(err)
	}

	query := `
		INSERT INTO recipes (
			id, name_raw, name_norm, ingredients, instructions,
			prep_time, cook_time, servings, category, rating,
			favorite, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = q.ExecContext(ctx, query,
		r.ID, r.Name, recipe.Normalize(r.Name), ingredientsJSON, instructionsJSON,
		r.PrepTime, r.CookTime, r.Servings, r.Category, r.Rating,
		boolToInt(r.Favorite), r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewNameAlreadyExists(r.Name)
		}
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetByName retrieves a recipe by its normalized name.
func GetByName(ctx context.Context, q Querier, nameNorm string) (*recipe.Recipe, error) {
	query := selectRecipe + " WHERE name_norm = ?"

	row := q.QueryRowContext(ctx, query, nameNorm)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(nameNorm)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return r, nil
}

// CheckNameExists checks if a recipe with the given normalized name exists.
func CheckNameExists(ctx context.Context, q Querier, nameNorm string) (bool, error) {
	query := `
		SELECT 1 FROM recipes
		WHERE name_norm = ?
		LIMIT 1
	`

	var exists int
	err := q.QueryRowContext(ctx, query, nameNorm).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, errors.NewInternal(err)
	}

	return true, nil
}

// UpdateByID replaces all mutable fields of an existing recipe and sets
// updated_at to the current timestamp. The id never changes; the name may,
// which can collide with another recipe's name.
func UpdateByID(ctx context.Context, q Querier, r *recipe.Recipe) error {
	ingredientsJSON, instructionsJSON, err := marshalContent(r)
	if err != nil {
		return errors.NewInternal(err)
	}

	now := time.Now().Unix()

	query := `
		UPDATE recipes
		SET name_raw = ?, name_norm = ?, ingredients = ?, instructions = ?,
			prep_time = ?, cook_time = ?, servings = ?, category = ?,
			rating = ?, favorite = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := q.ExecContext(ctx, query,
		r.Name, recipe.Normalize(r.Name), ingredientsJSON, instructionsJSON,
		r.PrepTime, r.CookTime, r.Servings, r.Category,
		r.Rating, boolToInt(r.Favorite), now,
		r.ID,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return errors.NewNameAlreadyExists(r.Name)
		}
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(r.Name)
	}

	// Update the struct's UpdatedAt field
	r.UpdatedAt = now

	return nil
}

// DeleteByID removes a recipe permanently.
func DeleteByID(ctx context.Context, q Querier, id string) error {
	result, err := q.ExecContext(ctx, "DELETE FROM recipes WHERE id = ?", id)
	if err != nil {
		return errors.NewInternal(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}

	return nil
}

// ListFilters narrows List results. Zero values mean no filtering.
type ListFilters struct {
	// Category filters to an exact category, matched case-insensitively
	Category *string

	// Favorites keeps only recipes marked as favorites
	Favorites bool

	// RatedOnly keeps only recipes with a rating above zero
	RatedOnly bool
}

// ListSort selects the ordering of List results.
type ListSort string

const (
	// SortByName orders by normalized name ascending.
	SortByName ListSort = "name"
	// SortByUpdated orders by last update, most recent first.
	SortByUpdated ListSort = "updated"
	// SortByRating orders by rating descending, then name.
	SortByRating ListSort = "rating"
)

// List returns recipe summaries matching the filters in the given order,
// plus the total match count before pagination.
func List(ctx context.Context, q Querier, filters ListFilters, sort ListSort, limit, offset int) ([]recipe.Summary, int, error) {
	where, args := buildWhere(filters)

	var total int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipes"+where, args...).Scan(&total); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	query := selectRecipe + where + orderClause(sort) + " LIMIT ? OFFSET ?"
	rows, err := q.QueryContext(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.NewInternal(err)
	}
	defer rows.Close()

	summaries := make([]recipe.Summary, 0)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, 0, errors.NewInternal(err)
		}
		summaries = append(summaries, r.ToSummary())
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.NewInternal(err)
	}

	return summaries, total, nil
}

// ListAllFull returns every recipe with full content, ordered by name.
// Used by operations that need ingredient or instruction text in bulk.
func ListAllFull(ctx context.Context, q Querier) ([]*recipe.Recipe, error) {
	rows, err := q.QueryContext(ctx, selectRecipe+" ORDER BY name_norm ASC")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	recipes := make([]*recipe.Recipe, 0)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return recipes, nil
}

// buildWhere assembles the WHERE clause for List filters.
func buildWhere(f ListFilters) (string, []any) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 1)

	if f.Category != nil {
		clauses = append(clauses, "category = ? COLLATE NOCASE")
		args = append(args, *f.Category)
	}
	if f.Favorites {
		clauses = append(clauses, "favorite = 1")
	}
	if f.RatedOnly {
		clauses = append(clauses, "rating > 0")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// orderClause maps a ListSort to its ORDER BY clause. Ties break on id so
// pagination stays stable.
func orderClause(sort ListSort) string {
	switch sort {
	case SortByUpdated:
		return " ORDER BY updated_at DESC, id DESC"
	case SortByRating:
		return " ORDER BY rating DESC, name_norm ASC"
	default:
		return " ORDER BY name_norm ASC"
	}
}

// CountAll returns the total number of recipes.
func CountAll(ctx context.Context, q Querier) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipes").Scan(&count); err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// CountFavorites returns the number of recipes marked as favorites.
func CountFavorites(ctx context.Context, q Querier) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipes WHERE favorite = 1").Scan(&count); err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// CountRated returns the number of recipes with a non-zero rating.
func CountRated(ctx context.Context, q Querier) (int, error) {
	var count int
	if err := q.QueryRowContext(ctx, "SELECT COUNT(*) FROM recipes WHERE rating > 0").Scan(&count); err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// CategoryCount is one category's recipe count.
type CategoryCount struct {
	// Category is the stored label; empty for uncategorized recipes
	Category string `json:"category"`

	// Count is the number of recipes in the category
	Count int `json:"count"`
}

// CategoryCounts returns per-category recipe counts, largest first.
// Uncategorized recipes are not listed.
func CategoryCounts(ctx context.Context, q Querier) ([]CategoryCount, error) {
	query := `
		SELECT category, COUNT(*)
		FROM recipes
		WHERE category != ''
		GROUP BY category
		ORDER BY COUNT(*) DESC, category ASC
	`

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	counts := make([]CategoryCount, 0)
	for rows.Next() {
		var cc CategoryCount
		if err := rows.Scan(&cc.Category, &cc.Count); err != nil {
			return nil, errors.NewInternal(err)
		}
		counts = append(counts, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return counts, nil
}

// AverageRating returns the mean rating across rated recipes, or 0 when
// nothing has been rated yet.
func AverageRating(ctx context.Context, q Querier) (float64, error) {
	var avg sql.NullFloat64
	if err := q.QueryRowContext(ctx, "SELECT AVG(rating) FROM recipes WHERE rating > 0").Scan(&avg); err != nil {
		return 0, errors.NewInternal(err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// rowScanner lets scanRecipe work on both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecipe scans a single row into a Recipe struct.
func scanRecipe(row rowScanner) (*recipe.Recipe, error) {
	var (
		r                recipe.Recipe
		ingredientsJSON  string
		instructionsJSON string
		favorite         int
	)

	err := row.Scan(
		&r.ID, &r.Name, &ingredientsJSON, &instructionsJSON,
		&r.PrepTime, &r.CookTime, &r.Servings, &r.Category, &r.Rating,
		&favorite, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Favorite = favorite != 0

	if err := json.Unmarshal([]byte(ingredientsJSON), &r.Ingredients); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(instructionsJSON), &r.Instructions); err != nil {
		return nil, err
	}

	return &r, nil
}

// marshalContent encodes a recipe's ingredient and instruction lists as JSON.
func marshalContent(r *recipe.Recipe) (string, string, error) {
	ingredients, err := json.Marshal(r.Ingredients)
	if err != nil {
		return "", "", err
	}
	instructions, err := json.Marshal(r.Instructions)
	if err != nil {
		return "", "", err
	}
	return string(ingredients), string(instructions), nil
}

// boolToInt stores favorite flags as 0/1.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
