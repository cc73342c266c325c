package ops

import (
	"context"
	"testing"

	"github.com/jmorneau/ladle/internal/db"
	"github.com/jmorneau/ladle/internal/recipe"
)

func TestStats_Counts(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	addRecipe(t, database, pancakesInput())
	addRecipe(t, database, chiliInput())
	toast := AddInput{
		Name:         "Toast",
		Ingredients:  []recipe.Ingredient{{Item: "bread", Amount: num("2")}},
		Instructions: []string{"Toast it."},
	}
	addRecipe(t, database, toast)

	if _, err := Rate(ctx, database, RateInput{Name: "Pancakes", Rating: 4}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if _, err := Rate(ctx, database, RateInput{Name: "Chili", Rating: 3}); err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if _, err := Favorite(ctx, database, FavoriteInput{Name: "Chili", Set: boolPtr(true)}); err != nil {
		t.Fatalf("Favorite failed: %v", err)
	}

	out, err := Stats(ctx, database, StatsInput{})
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if out.Recipes != 3 {
		t.Errorf("Recipes = %d, want 3", out.Recipes)
	}
	if out.Favorites != 1 {
		t.Errorf("Favorites = %d, want 1", out.Favorites)
	}
	if out.Rated != 2 {
		t.Errorf("Rated = %d, want 2", out.Rated)
	}
	if out.AverageRating != 3.5 {
		t.Errorf("AverageRating = %v, want 3.5", out.AverageRating)
	}

	// Uncategorized Toast does not appear in the breakdown
	want := []db.CategoryCount{{Category: "breakfast", Count: 1}, {Category: "dinner", Count: 1}}
	if len(out.Categories) != len(want) {
		t.Fatalf("Categories = %+v, want %+v", out.Categories, want)
	}
	for i := range want {
		if out.Categories[i] != want[i] {
			t.Errorf("Categories[%d] = %+v, want %+v", i, out.Categories[i], want[i])
		}
	}

	if out.DatabaseSize != "" {
		t.Errorf("DatabaseSize = %q, want empty without a base dir", out.DatabaseSize)
	}
}

func TestStats_AverageRounding(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	names := []string{"A", "B", "C"}
	ratings := []int{4, 3, 3}
	for i, name := range names {
		in := pancakesInput()
		in.Name = name
		addRecipe(t, database, in)
		if _, err := Rate(ctx, database, RateInput{Name: name, Rating: ratings[i]}); err != nil {
			t.Fatalf("Rate failed: %v", err)
		}
	}

	out, err := Stats(ctx, database, StatsInput{})
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	// 10/3 rounded to two decimals
	if out.AverageRating != 3.33 {
		t.Errorf("AverageRating = %v, want 3.33", out.AverageRating)
	}
}

func TestStats_DatabaseSize(t *testing.T) {
	baseDir := t.TempDir()
	database, err := db.Init(baseDir)
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	out, err := Stats(context.Background(), database, StatsInput{BaseDir: baseDir})
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if out.DatabaseSize == "" {
		t.Error("DatabaseSize should be populated when the base dir is known")
	}
}

func TestStats_EmptyCatalog(t *testing.T) {
	database := testDB(t)

	out, err := Stats(context.Background(), database, StatsInput{})
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if out.Recipes != 0 || out.Favorites != 0 || out.Rated != 0 {
		t.Errorf("counts = %d/%d/%d, want all zero", out.Recipes, out.Favorites, out.Rated)
	}
	if out.AverageRating != 0 {
		t.Errorf("AverageRating = %v, want 0", out.AverageRating)
	}
	if out.Categories == nil || len(out.Categories) != 0 {
		t.Errorf("Categories = %#v, want empty non-nil slice", out.Categories)
	}
}
