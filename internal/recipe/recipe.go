package recipe

import "strings"

// MaxRating is the top of the rating scale. A rating of 0 means unrated.
const MaxRating = 5

// Recipe represents a stored recipe record. Names are the unique key,
// matched case-insensitively through their normalized form.
type Recipe struct {
	// ID is a ULID that uniquely identifies this recipe
	ID string `json:"id"`

	// Name is the recipe name as provided by the user
	Name string `json:"name"`

	// Ingredients is the ordered ingredient list
	Ingredients []Ingredient `json:"ingredients"`

	// Instructions is the ordered list of preparation steps
	Instructions []string `json:"instructions"`

	// PrepTime is the preparation time in minutes
	PrepTime int `json:"prep_time"`

	// CookTime is the cooking time in minutes
	CookTime int `json:"cook_time"`

	// Servings is the serving count the amounts are written for (may be zero)
	Servings int `json:"servings"`

	// Category is an optional free-form grouping label
	Category string `json:"category,omitempty"`

	// Rating is 0-5, where 0 means unrated
	Rating int `json:"rating"`

	// Favorite marks the recipe as a favorite
	Favorite bool `json:"favorite"`

	// CreatedAt is the Unix timestamp when the recipe was created
	CreatedAt int64 `json:"created_at"`

	// UpdatedAt is the Unix timestamp when the recipe was last updated
	UpdatedAt int64 `json:"updated_at"`
}

// Ingredient is one entry of a recipe's ingredient list. The shape is fixed:
// records missing fields are defaulted at the storage boundary.
type Ingredient struct {
	// Item is the ingredient name
	Item string `json:"item"`

	// Amount is the quantity, numeric or free-form
	Amount Amount `json:"amount"`

	// Unit is the measurement unit as written; never validated against the
	// conversion table and may be empty
	Unit string `json:"unit"`
}

// TotalTime returns prep time plus cook time in minutes.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// RatingDisplay renders the rating as stars, or "unrated" for 0.
func (r *Recipe) RatingDisplay() string {
	if r.Rating <= 0 {
		return "unrated"
	}
	rating := min(r.Rating, MaxRating)
	return strings.Repeat("★", rating) + strings.Repeat("☆", MaxRating-rating)
}
