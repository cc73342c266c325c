package ops

import (
	"context"
	"testing"

	"github.com/jmorneau/ladle/internal/errors"
)

func TestRate_SetAndDisplay(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	addRecipe(t, database, pancakesInput())

	out, err := Rate(ctx, database, RateInput{Name: "pancakes", Rating: 4})
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}

	if out.Rating != 4 {
		t.Errorf("Rating = %d, want 4", out.Rating)
	}
	if out.RatingDisplay != "★★★★☆" {
		t.Errorf("RatingDisplay = %q, want %q", out.RatingDisplay, "★★★★☆")
	}

	got, err := Get(ctx, database, GetInput{Name: "pancakes"})
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Rating != 4 {
		t.Errorf("stored Rating = %d, want 4", got.Rating)
	}
}

func TestRate_Clear(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	rated := pancakesInput()
	rated.Rating = 5
	addRecipe(t, database, rated)

	out, err := Rate(ctx, database, RateInput{Name: "pancakes", Rating: 0})
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}

	if out.Rating != 0 {
		t.Errorf("Rating = %d, want 0", out.Rating)
	}
	if out.RatingDisplay != "unrated" {
		t.Errorf("RatingDisplay = %q, want %q", out.RatingDisplay, "unrated")
	}
}

func TestRate_OutOfRange(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	addRecipe(t, database, pancakesInput())

	for _, rating := range []int{-1, 6} {
		_, err := Rate(ctx, database, RateInput{Name: "pancakes", Rating: rating})
		if !errors.Is(err, errors.ErrInvalidRequest) {
			t.Errorf("Rate(%d) should return ErrInvalidRequest, got: %v", rating, err)
		}
	}
}

func TestRate_NotFound(t *testing.T) {
	database := testDB(t)

	_, err := Rate(context.Background(), database, RateInput{Name: "nonexistent", Rating: 3})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("Rate should return ErrNotFound, got: %v", err)
	}
}
