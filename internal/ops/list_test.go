package ops

import (
	"context"
	"testing"

	"github.com/jmorneau/ladle/internal/errors"
)

func TestList_Empty(t *testing.T) {
	database := testDB(t)

	out, err := List(context.Background(), database, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if out.Items == nil {
		t.Error("Items should be an empty array, not nil")
	}
	if len(out.Items) != 0 || out.Pagination.Total != 0 {
		t.Errorf("items/total = %d/%d, want 0/0", len(out.Items), out.Pagination.Total)
	}
	if out.Pagination.HasMore {
		t.Error("HasMore = true, want false")
	}
}

func TestList_DefaultSortByName(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	addRecipe(t, database, chiliInput())
	addRecipe(t, database, pancakesInput())

	out, err := List(ctx, database, ListInput{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if out.Sort != "name_asc" {
		t.Errorf("Sort = %q, want %q", out.Sort, "name_asc")
	}
	if len(out.Items) != 2 || out.Items[0].Name != "Chili" || out.Items[1].Name != "Pancakes" {
		t.Errorf("items = %+v, want [Chili Pancakes]", out.Items)
	}
	if out.Items[1].IngredientCount != 4 {
		t.Errorf("IngredientCount = %d, want 4", out.Items[1].IngredientCount)
	}
}

func TestList_CategoryFilter(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	addRecipe(t, database, pancakesInput())
	addRecipe(t, database, chiliInput())

	out, err := List(ctx, database, ListInput{Category: stringPtr("BREAKFAST")})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(out.Items) != 1 || out.Items[0].Name != "Pancakes" {
		t.Errorf("items = %+v, want [Pancakes]", out.Items)
	}
}

func TestList_FavoritesFilter(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	fav := pancakesInput()
	fav.Favorite = true
	addRecipe(t, database, fav)
	addRecipe(t, database, chiliInput())

	out, err := List(ctx, database, ListInput{Favorites: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(out.Items) != 1 || out.Items[0].Name != "Pancakes" {
		t.Errorf("items = %+v, want [Pancakes]", out.Items)
	}
}

func TestList_TopRated(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	good := pancakesInput()
	good.Rating = 3
	addRecipe(t, database, good)

	best := chiliInput()
	best.Rating = 5
	addRecipe(t, database, best)

	unrated := pancakesInput()
	unrated.Name = "Toast"
	unrated.Rating = 0
	addRecipe(t, database, unrated)

	out, err := List(ctx, database, ListInput{TopRated: true})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if out.Sort != "rating_desc" {
		t.Errorf("Sort = %q, want %q", out.Sort, "rating_desc")
	}
	if len(out.Items) != 2 {
		t.Fatalf("items = %d, want 2 (unrated excluded)", len(out.Items))
	}
	if out.Items[0].Name != "Chili" || out.Items[1].Name != "Pancakes" {
		t.Errorf("order = [%s %s], want [Chili Pancakes]", out.Items[0].Name, out.Items[1].Name)
	}
}

func TestList_SortUpdated(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	addRecipe(t, database, pancakesInput())
	addRecipe(t, database, chiliInput())

	out, err := List(ctx, database, ListInput{Sort: "updated"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Sort != "updated_at_desc" {
		t.Errorf("Sort = %q, want %q", out.Sort, "updated_at_desc")
	}
	if len(out.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(out.Items))
	}
}

func TestList_Pagination(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	names := []string{"Apple Pie", "Bread", "Chili", "Dumplings", "Eggs"}
	for _, name := range names {
		input := pancakesInput()
		input.Name = name
		addRecipe(t, database, input)
	}

	out, err := List(ctx, database, ListInput{Limit: 2})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(out.Items) != 2 || out.Pagination.Total != 5 {
		t.Errorf("items/total = %d/%d, want 2/5", len(out.Items), out.Pagination.Total)
	}
	if !out.Pagination.HasMore {
		t.Error("HasMore = false, want true")
	}

	last, err := List(ctx, database, ListInput{Limit: 2, Offset: 4})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(last.Items) != 1 || last.Pagination.HasMore {
		t.Errorf("last page items/hasMore = %d/%v, want 1/false", len(last.Items), last.Pagination.HasMore)
	}
}

func TestList_LimitBounds(t *testing.T) {
	database := testDB(t)

	out, err := List(context.Background(), database, ListInput{Limit: 100000})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Pagination.Limit != MaxListLimit {
		t.Errorf("Limit = %d, want capped at %d", out.Pagination.Limit, MaxListLimit)
	}

	out, err = List(context.Background(), database, ListInput{Limit: -3, Offset: -10})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if out.Pagination.Limit != DefaultListLimit || out.Pagination.Offset != 0 {
		t.Errorf("limit/offset = %d/%d, want %d/0", out.Pagination.Limit, out.Pagination.Offset, DefaultListLimit)
	}
}

func TestList_InvalidSort(t *testing.T) {
	database := testDB(t)

	_, err := List(context.Background(), database, ListInput{Sort: "alphabetical"})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("List should return ErrInvalidRequest, got: %v", err)
	}
}
