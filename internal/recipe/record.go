package recipe

// Record is the JSON interchange form of a recipe, used by import and
// export files (a single array of records). The schema is lenient on read:
// missing fields take defaults, unknown fields are ignored, and ids and
// timestamps are never serialized; they are assigned on import.
type Record struct {
	Name         string       `json:"name"`
	Ingredients  []Ingredient `json:"ingredients"`
	Instructions []string     `json:"instructions"`
	PrepTime     int          `json:"prep_time"`
	CookTime     int          `json:"cook_time"`
	Servings     *int         `json:"servings"` // default 1 when absent
	Category     string       `json:"category"`
	Rating       int          `json:"rating"`
	Favorite     bool         `json:"favorite"`
}

// ToRecipe converts a Record to a Recipe, applying schema defaults and
// boundary normalization. ID and timestamps are left for the caller.
func (r *Record) ToRecipe() *Recipe {
	servings := 1
	if r.Servings != nil {
		servings = *r.Servings
	}

	return &Recipe{
		Name:         r.Name,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		PrepTime:     max(r.PrepTime, 0),
		CookTime:     max(r.CookTime, 0),
		Servings:     servings,
		Category:     r.Category,
		Rating:       clampRating(r.Rating),
		Favorite:     r.Favorite,
	}
}

// RecordFromRecipe converts a stored Recipe to its interchange Record.
func RecordFromRecipe(rc *Recipe) *Record {
	servings := rc.Servings
	return &Record{
		Name:         rc.Name,
		Ingredients:  rc.Ingredients,
		Instructions: rc.Instructions,
		PrepTime:     rc.PrepTime,
		CookTime:     rc.CookTime,
		Servings:     &servings,
		Category:     rc.Category,
		Rating:       rc.Rating,
		Favorite:     rc.Favorite,
	}
}

// clampRating forces a rating into the 0-5 scale.
func clampRating(rating int) int {
	return min(max(rating, 0), MaxRating)
}
