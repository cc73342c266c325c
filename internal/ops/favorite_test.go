package ops

import (
	"context"
	"testing"

	"github.com/jmorneau/ladle/internal/errors"
)

func TestFavorite_Toggle(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	addRecipe(t, database, pancakesInput())

	out, err := Favorite(ctx, database, FavoriteInput{Name: "pancakes"})
	if err != nil {
		t.Fatalf("Favorite failed: %v", err)
	}
	if !out.Favorite {
		t.Error("first toggle should set favorite = true")
	}

	out, err = Favorite(ctx, database, FavoriteInput{Name: "pancakes"})
	if err != nil {
		t.Fatalf("Favorite failed: %v", err)
	}
	if out.Favorite {
		t.Error("second toggle should set favorite = false")
	}
}

func TestFavorite_ExplicitSet(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	addRecipe(t, database, pancakesInput())

	// Setting true twice stays true (not a toggle)
	for i := 0; i < 2; i++ {
		out, err := Favorite(ctx, database, FavoriteInput{Name: "pancakes", Set: boolPtr(true)})
		if err != nil {
			t.Fatalf("Favorite failed: %v", err)
		}
		if !out.Favorite {
			t.Errorf("attempt %d: Favorite = false, want true", i+1)
		}
	}

	got, err := Get(ctx, database, GetInput{Name: "pancakes"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !got.Favorite {
		t.Error("stored Favorite = false, want true")
	}
}

func TestFavorite_NotFound(t *testing.T) {
	database := testDB(t)

	_, err := Favorite(context.Background(), database, FavoriteInput{Name: "nonexistent"})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Favorite should return ErrNotFound, got: %v", err)
	}
}
