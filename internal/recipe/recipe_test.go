package recipe

import (
	"testing"
)

func TestTotalTime(t *testing.T) {
	r := Recipe{PrepTime: 10, CookTime: 25}
	if got := r.TotalTime(); got != 35 {
		t.Errorf("TotalTime() = %d, want 35", got)
	}

	var zero Recipe
	if got := zero.TotalTime(); got != 0 {
		t.Errorf("TotalTime() = %d, want 0", got)
	}
}

func TestRatingDisplay(t *testing.T) {
	tests := []struct {
		name   string
		rating int
		want   string
	}{
		{
			name:   "unrated",
			rating: 0,
			want:   "unrated",
		},
		{
			name:   "three stars",
			rating: 3,
			want:   "★★★☆☆",
		},
		{
			name:   "full scale",
			rating: 5,
			want:   "★★★★★",
		},
		{
			name:   "above scale clamps",
			rating: 9,
			want:   "★★★★★",
		},
		{
			name:   "negative is unrated",
			rating: -1,
			want:   "unrated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Recipe{Rating: tt.rating}
			if got := r.RatingDisplay(); got != tt.want {
				t.Errorf("RatingDisplay() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToSummary(t *testing.T) {
	r := Recipe{
		ID:           "01JA0000000000000000000000",
		Name:         "Pancakes",
		Category:     "breakfast",
		Servings:     4,
		PrepTime:     10,
		CookTime:     15,
		Ingredients:  []Ingredient{{Item: "flour"}, {Item: "milk"}, {Item: "eggs"}},
		Instructions: []string{"Mix.", "Cook."},
		Rating:       4,
		Favorite:     true,
		CreatedAt:    1700000000,
		UpdatedAt:    1700000500,
	}

	s := r.ToSummary()

	if s.ID != r.ID || s.Name != r.Name || s.Category != r.Category {
		t.Errorf("ToSummary() identity fields = %+v", s)
	}
	if s.TotalTime != 25 {
		t.Errorf("TotalTime = %d, want 25", s.TotalTime)
	}
	if s.IngredientCount != 3 {
		t.Errorf("IngredientCount = %d, want 3", s.IngredientCount)
	}
	if s.Rating != 4 || !s.Favorite {
		t.Errorf("rating/favorite = %d/%v, want 4/true", s.Rating, s.Favorite)
	}
	if s.CreatedAt != r.CreatedAt || s.UpdatedAt != r.UpdatedAt {
		t.Errorf("timestamps = %d/%d, want %d/%d", s.CreatedAt, s.UpdatedAt, r.CreatedAt, r.UpdatedAt)
	}
}
