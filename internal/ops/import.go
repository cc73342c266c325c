package ops

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jmorneau/ladle/internal/config"
	"github.com/jmorneau/ladle/internal/db"
	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
)

// ImportMode controls collision behavior during import.
type ImportMode string

const (
	ImportModeSkip    ImportMode = "skip"    // default: existing recipes win
	ImportModeReplace ImportMode = "replace" // imported recipes win
	ImportModeError   ImportMode = "error"   // atomic: first collision aborts
)

// ImportInput contains parameters for the Import operation.
type ImportInput struct {
	Path string     // required
	Mode ImportMode // default: skip
}

// ImportOutput contains the result of the Import operation.
type ImportOutput struct {
	Imported int           `json:"imported"`
	Replaced int           `json:"replaced"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors"`
}

// ImportError describes a record that could not be imported.
type ImportError struct {
	Index   int    `json:"index"` // 1-based position in the import array
	Name    string `json:"name,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Import reads recipes from a JSON interchange file. Records are lenient:
// missing fields default, unknown fields are ignored, and fresh ids and
// timestamps are assigned on the way in.
func Import(ctx context.Context, database *sql.DB, cfg *config.Config, input ImportInput) (*ImportOutput, error) {
	if input.Path == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}
	if input.Mode == "" {
		input.Mode = ImportModeSkip
	}
	if input.Mode != ImportModeSkip && input.Mode != ImportModeReplace && input.Mode != ImportModeError {
		return nil, errors.NewInvalidRequest("mode must be one of: skip, replace, error")
	}

	if err := ValidatePath(input.Path, PathCheckRead, cfg); err != nil {
		return nil, err
	}

	file, err := openFileNoFollowRead(input.Path)
	if err != nil {
		if errors.Is(err, errors.ErrFileNotFound) || errors.Is(err, errors.ErrInvalidRequest) {
			return nil, err
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to open import file: %w", err))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to read import file: %w", err))
	}

	var records []recipe.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid import file: %v", err))
	}

	if input.Mode == ImportModeError {
		return importAtomic(ctx, database, records)
	}
	return importSequential(ctx, database, records, input.Mode)
}

// importSequential imports records one by one, resolving name collisions
// per the skip or replace mode. Malformed records become error entries and
// never stop the run.
func importSequential(ctx context.Context, database *sql.DB, records []recipe.Record, mode ImportMode) (*ImportOutput, error) {
	out := &ImportOutput{Errors: []ImportError{}}

	for i, record := range records {
		select {
		case <-ctx.Done():
			return nil, errors.NewCancelled("import")
		default:
		}

		r, importErr := recordToRecipe(i, record)
		if importErr != nil {
			out.Errors = append(out.Errors, *importErr)
			continue
		}

		existing, err := db.GetByName(ctx, database, recipe.Normalize(r.Name))
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}

		if existing == nil {
			if err := stampNew(r); err != nil {
				return nil, err
			}
			if err := db.Insert(ctx, database, r); err != nil {
				return nil, err
			}
			out.Imported++
			continue
		}

		if mode == ImportModeSkip {
			out.Skipped++
			continue
		}

		// replace: the imported record takes over the existing identity
		r.ID = existing.ID
		r.CreatedAt = existing.CreatedAt
		if err := db.UpdateByID(ctx, database, r); err != nil {
			return nil, err
		}
		out.Replaced++
	}

	return out, nil
}

// importAtomic imports all records in a single transaction. Any malformed
// record or name collision aborts the whole import.
func importAtomic(ctx context.Context, database *sql.DB, records []recipe.Record) (*ImportOutput, error) {
	// Validate all records before touching the database
	recipes := make([]*recipe.Recipe, 0, len(records))
	for i, record := range records {
		r, importErr := recordToRecipe(i, record)
		if importErr != nil {
			return &ImportOutput{Errors: []ImportError{*importErr}}, nil
		}
		recipes = append(recipes, r)
	}

	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer tx.Rollback() //nolint:errcheck

	imported := 0
	for i, r := range recipes {
		select {
		case <-ctx.Done():
			return nil, errors.NewCancelled("import")
		default:
		}

		if err := stampNew(r); err != nil {
			return nil, err
		}
		if err := db.Insert(ctx, tx, r); err != nil {
			if errors.Is(err, errors.ErrNameAlreadyExists) {
				return &ImportOutput{
					Errors: []ImportError{{
						Index:   i + 1,
						Name:    r.Name,
						Code:    string(errors.ErrNameAlreadyExists),
						Message: fmt.Sprintf("recipe %q already exists", r.Name),
					}},
				}, nil
			}
			return nil, err
		}
		imported++
	}

	if err := tx.Commit(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return &ImportOutput{
		Imported: imported,
		Errors:   []ImportError{},
	}, nil
}

// recordToRecipe validates one interchange record. Records that cannot
// become recipes come back as an ImportError instead.
func recordToRecipe(index int, record recipe.Record) (*recipe.Recipe, *ImportError) {
	if recipe.Normalize(record.Name) == "" {
		return nil, &ImportError{
			Index:   index + 1,
			Code:    "INVALID_RECORD",
			Message: "missing name",
		}
	}
	return record.ToRecipe(), nil
}

// stampNew assigns a fresh ID and timestamps to an imported recipe.
func stampNew(r *recipe.Recipe) error {
	id, err := generateULID()
	if err != nil {
		return errors.NewInternal(err)
	}
	now := time.Now().Unix()
	r.ID = id
	r.CreatedAt = now
	r.UpdatedAt = now
	return nil
}
