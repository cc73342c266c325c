package recipe

import (
	"encoding/json"
	"testing"
)

func TestRecordToRecipe(t *testing.T) {
	t.Run("missing servings defaults to 1", func(t *testing.T) {
		r := Record{Name: "Toast"}
		got := r.ToRecipe()

		if got.Servings != 1 {
			t.Errorf("Servings = %d, want 1", got.Servings)
		}
	})

	t.Run("explicit servings kept", func(t *testing.T) {
		servings := 6
		r := Record{Name: "Stew", Servings: &servings}
		got := r.ToRecipe()

		if got.Servings != 6 {
			t.Errorf("Servings = %d, want 6", got.Servings)
		}
	})

	t.Run("negative times clamp to zero", func(t *testing.T) {
		r := Record{Name: "Toast", PrepTime: -5, CookTime: -1}
		got := r.ToRecipe()

		if got.PrepTime != 0 || got.CookTime != 0 {
			t.Errorf("times = %d/%d, want 0/0", got.PrepTime, got.CookTime)
		}
	})

	t.Run("rating clamps into scale", func(t *testing.T) {
		tests := []struct {
			rating int
			want   int
		}{
			{rating: -2, want: 0},
			{rating: 0, want: 0},
			{rating: 3, want: 3},
			{rating: 9, want: 5},
		}
		for _, tt := range tests {
			r := Record{Name: "Toast", Rating: tt.rating}
			if got := r.ToRecipe().Rating; got != tt.want {
				t.Errorf("rating %d clamped to %d, want %d", tt.rating, got, tt.want)
			}
		}
	})
}

func TestRecordFromRecipe(t *testing.T) {
	rc := &Recipe{
		Name:         "Pancakes",
		Ingredients:  []Ingredient{{Item: "flour"}},
		Instructions: []string{"Mix."},
		PrepTime:     10,
		CookTime:     15,
		Servings:     4,
		Category:     "breakfast",
		Rating:       4,
		Favorite:     true,
	}

	rec := RecordFromRecipe(rc)

	if rec.Name != rc.Name || rec.Category != rc.Category {
		t.Errorf("Record = %+v, want fields of %+v", rec, rc)
	}
	if rec.Servings == nil || *rec.Servings != 4 {
		t.Errorf("Servings = %v, want 4", rec.Servings)
	}
	if rec.Rating != 4 || !rec.Favorite {
		t.Errorf("rating/favorite = %d/%v, want 4/true", rec.Rating, rec.Favorite)
	}

	round := rec.ToRecipe()
	if round.Name != rc.Name || round.Servings != rc.Servings || round.PrepTime != rc.PrepTime {
		t.Errorf("round trip = %+v, want %+v", round, rc)
	}
}

func TestRecordJSONDefaults(t *testing.T) {
	// A minimal exported record exercises the lenient read path: absent
	// fields decode to zero values, then ToRecipe applies schema defaults.
	var rec Record
	if err := json.Unmarshal([]byte(`{"name": "Toast", "unknown_field": true}`), &rec); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	got := rec.ToRecipe()
	if got.Name != "Toast" {
		t.Errorf("Name = %q, want %q", got.Name, "Toast")
	}
	if got.Servings != 1 {
		t.Errorf("Servings = %d, want 1", got.Servings)
	}
	if got.PrepTime != 0 || got.CookTime != 0 || got.Category != "" || got.Rating != 0 || got.Favorite {
		t.Errorf("defaults not applied: %+v", got)
	}
}
