package ops

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmorneau/ladle/internal/config"
	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
)

// exportCfg allows writes into dir for the duration of a test.
func exportCfg(dir string) *config.Config {
	return &config.Config{AllowedPaths: []string{dir}}
}

func TestExport_WritesFile(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	addRecipe(t, database, pancakesInput())
	addRecipe(t, database, chiliInput())

	dir := t.TempDir()
	path := filepath.Join(dir, "recipes.json")

	out, err := Export(ctx, database, exportCfg(dir), ExportInput{Path: path})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.Count != 2 {
		t.Errorf("Count = %d, want 2", out.Count)
	}
	if out.Path != path {
		t.Errorf("Path = %q, want %q", out.Path, path)
	}
	if out.ExportedAt == 0 {
		t.Error("ExportedAt should be set")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.HasSuffix(string(data), "\n") {
		t.Error("export file should end with a newline")
	}

	var records []recipe.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("exported %d records, want 2", len(records))
	}
	// Full exports come out in name order
	if records[0].Name != "Chili" || records[1].Name != "Pancakes" {
		t.Errorf("record names = %q, %q", records[0].Name, records[1].Name)
	}
	if records[1].Servings == nil || *records[1].Servings != 4 {
		t.Errorf("pancakes servings not preserved: %v", records[1].Servings)
	}
	if len(records[1].Ingredients) != 4 {
		t.Errorf("pancakes ingredients = %d, want 4", len(records[1].Ingredients))
	}

	// Interchange records carry no ids or timestamps
	if strings.Contains(string(data), "created_at") || strings.Contains(string(data), "\"id\"") {
		t.Errorf("export should not contain ids or timestamps:\n%s", data)
	}
}

func TestExport_SelectedNames(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()

	addRecipe(t, database, pancakesInput())
	addRecipe(t, database, chiliInput())

	dir := t.TempDir()
	path := filepath.Join(dir, "some.json")

	out, err := Export(ctx, database, exportCfg(dir), ExportInput{
		Path:  path,
		Names: []string{"CHILI", "Lasagna"},
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.Count != 1 {
		t.Errorf("Count = %d, want 1", out.Count)
	}
	if len(out.Skipped) != 1 || out.Skipped[0] != "Lasagna" {
		t.Errorf("Skipped = %v, want [Lasagna]", out.Skipped)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var records []recipe.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Chili" {
		t.Errorf("records = %+v, want just Chili", records)
	}
}

func TestExport_EmptyCatalog(t *testing.T) {
	database := testDB(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "empty.json")

	out, err := Export(context.Background(), database, exportCfg(dir), ExportInput{Path: path})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out.Count != 0 {
		t.Errorf("Count = %d, want 0", out.Count)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("empty export = %q, want %q", data, "[]\n")
	}
}

func TestExport_OverwritesExisting(t *testing.T) {
	database := testDB(t)
	addRecipe(t, database, pancakesInput())

	dir := t.TempDir()
	path := filepath.Join(dir, "recipes.json")
	if err := os.WriteFile(path, []byte("stale garbage"), 0600); err != nil {
		t.Fatalf("seeding existing file: %v", err)
	}

	if _, err := Export(context.Background(), database, exportCfg(dir), ExportInput{Path: path}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	var records []recipe.Record
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("overwritten file is not valid JSON: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want 1", len(records))
	}

	// No stray temp files left behind
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading dir: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("export dir has leftovers: %v", names)
	}
}

func TestExport_BadExtension(t *testing.T) {
	database := testDB(t)
	dir := t.TempDir()

	_, err := Export(context.Background(), database, exportCfg(dir), ExportInput{
		Path: filepath.Join(dir, "recipes.txt"),
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("non-JSON path should return ErrInvalidRequest, got: %v", err)
	}
}

func TestExport_TraversalRejected(t *testing.T) {
	database := testDB(t)
	dir := t.TempDir()

	_, err := Export(context.Background(), database, exportCfg(dir), ExportInput{
		Path: dir + "/../escape.json",
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("traversal path should return ErrInvalidRequest, got: %v", err)
	}
}

func TestExport_DisallowedDir(t *testing.T) {
	database := testDB(t)
	allowed := t.TempDir()
	elsewhere := t.TempDir()

	_, err := Export(context.Background(), database, exportCfg(allowed), ExportInput{
		Path: filepath.Join(elsewhere, "recipes.json"),
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("path outside allowed dirs should return ErrInvalidRequest, got: %v", err)
	}
}

func TestExport_SubdirectoryRejected(t *testing.T) {
	database := testDB(t)
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	// Files must sit directly in an allowed dir, not below it
	_, err := Export(context.Background(), database, exportCfg(dir), ExportInput{
		Path: filepath.Join(sub, "recipes.json"),
	})
	if !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("subdirectory path should return ErrInvalidRequest, got: %v", err)
	}
}
