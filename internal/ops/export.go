package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/jmorneau/ladle/internal/config"
	"github.com/jmorneau/ladle/internal/db"
	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
)

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	Path  string   // optional, default: ~/.ladle/exports/recipes-<timestamp>.json
	Names []string // optional selection; empty exports the whole catalog
}

// ExportOutput contains the result of the Export operation.
type ExportOutput struct {
	Path       string   `json:"path"`
	Count      int      `json:"count"`
	Skipped    []string `json:"skipped"` // requested names that matched nothing
	ExportedAt int64    `json:"exported_at"`
}

// Export writes recipes to a JSON interchange file: a single array of
// records without ids or timestamps. The file is written to a temp path
// and renamed into place so a failure never clobbers an existing export.
func Export(ctx context.Context, database *sql.DB, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	now := time.Now()
	exportedAt := now.Unix()

	// Determine export path
	exportPath := input.Path
	if exportPath == "" {
		var err error
		exportPath, err = defaultExportPath(now)
		if err != nil {
			return nil, err
		}
	}

	// Validate ALL paths (both user-provided and default) for security
	if err := ValidatePath(exportPath, PathCheckWrite, cfg); err != nil {
		return nil, err
	}

	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(exportPath), 0700); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
	}

	// Collect the recipes to export
	var recipes []*recipe.Recipe
	skipped := []string{}
	if len(input.Names) == 0 {
		var err error
		recipes, err = db.ListAllFull(ctx, database)
		if err != nil {
			return nil, err
		}
	} else {
		src := db.RecipeSource{Q: database}
		for _, name := range input.Names {
			select {
			case <-ctx.Done():
				return nil, errors.NewCancelled("export")
			default:
			}

			r, err := src.FindByName(ctx, name)
			if err != nil {
				return nil, err
			}
			if r == nil {
				skipped = append(skipped, name)
				continue
			}
			recipes = append(recipes, r)
		}
	}

	records := make([]recipe.Record, 0, len(recipes))
	for _, r := range recipes {
		records = append(records, *recipe.RecordFromRecipe(r))
	}

	// Indented so exports stay hand-editable
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	data = append(data, '\n')

	// Write to temp file first, then atomic rename to preserve existing file on failure
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := exportPath + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	// Clean up temp file on failure (original file is preserved)
	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(data); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Close before atomic replace (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// Check if destination is a symlink (os.Rename would follow it)
	if info, err := os.Lstat(exportPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInternal(fmt.Errorf("export path is a symlink"))
	}

	// Finalize export by renaming the temp file into place.
	//
	// On Windows, os.Rename fails if the destination exists. We fail safely
	// (preserving the existing file) instead of doing a non-atomic
	// delete+rename that could lose the original if rename fails.
	if err := os.Rename(tempPath, exportPath); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(exportPath); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; overwriting is not supported on Windows yet (choose a new path or delete the existing file)")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &ExportOutput{
		Path:       exportPath,
		Count:      len(records),
		Skipped:    skipped,
		ExportedAt: exportedAt,
	}, nil
}

// defaultExportPath generates the default export path.
// Format: ~/.ladle/exports/recipes-<timestamp>.json
func defaultExportPath(now time.Time) (string, error) {
	exportsDir, err := DefaultExportsDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("recipes-%s.json", now.Format("2006-01-02T150405"))
	return filepath.Join(exportsDir, filename), nil
}
