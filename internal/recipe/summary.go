package recipe

// Summary represents a recipe's metadata without the full ingredient and
// instruction content. Used for browse operations (list, search, stats).
type Summary struct {
	// ID is a ULID that uniquely identifies this recipe
	ID string `json:"id"`

	// Name is the recipe name as provided by the user
	Name string `json:"name"`

	// Category is an optional free-form grouping label
	Category string `json:"category,omitempty"`

	// Servings is the serving count the recipe is written for
	Servings int `json:"servings"`

	// PrepTime is the preparation time in minutes
	PrepTime int `json:"prep_time"`

	// CookTime is the cooking time in minutes
	CookTime int `json:"cook_time"`

	// TotalTime is prep time plus cook time in minutes
	TotalTime int `json:"total_time"`

	// IngredientCount is the number of ingredient entries
	IngredientCount int `json:"ingredient_count"`

	// Rating is 0-5, where 0 means unrated
	Rating int `json:"rating"`

	// Favorite marks the recipe as a favorite
	Favorite bool `json:"favorite"`

	// CreatedAt is the Unix timestamp when the recipe was created
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp when the recipe was last updated
	UpdatedAt int64 `json:"updated_at"`
}

// ToSummary converts a Recipe to a Summary by dropping the ingredient and
// instruction content.
func (r *Recipe) ToSummary() Summary {
	return Summary{
		ID:              r.ID,
		Name:            r.Name,
		Category:        r.Category,
		Servings:        r.Servings,
		PrepTime:        r.PrepTime,
		CookTime:        r.CookTime,
		TotalTime:       r.TotalTime(),
		IngredientCount: len(r.Ingredients),
		Rating:          r.Rating,
		Favorite:        r.Favorite,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
