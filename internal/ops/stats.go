package ops

import (
	"context"
	"database/sql"
	"math"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/jmorneau/ladle/internal/db"
)

// StatsInput contains parameters for the Stats operation.
type StatsInput struct {
	// BaseDir is the data directory holding the database file. When empty,
	// the database size is omitted from the output.
	BaseDir string
}

// StatsOutput contains catalog statistics.
type StatsOutput struct {
	Recipes       int                `json:"recipes"`
	Favorites     int                `json:"favorites"`
	Rated         int                `json:"rated"`
	AverageRating float64            `json:"average_rating"`
	Categories    []db.CategoryCount `json:"categories"`
	DatabaseSize  string             `json:"database_size,omitempty"`
}

// Stats reports catalog counts, rating aggregates, and the on-disk size of
// the database.
func Stats(ctx context.Context, database *sql.DB, input StatsInput) (*StatsOutput, error) {
	recipes, err := db.CountAll(ctx, database)
	if err != nil {
		return nil, err
	}
	favorites, err := db.CountFavorites(ctx, database)
	if err != nil {
		return nil, err
	}
	rated, err := db.CountRated(ctx, database)
	if err != nil {
		return nil, err
	}
	avg, err := db.AverageRating(ctx, database)
	if err != nil {
		return nil, err
	}
	categories, err := db.CategoryCounts(ctx, database)
	if err != nil {
		return nil, err
	}

	out := &StatsOutput{
		Recipes:       recipes,
		Favorites:     favorites,
		Rated:         rated,
		AverageRating: math.Round(avg*100) / 100,
		Categories:    categories,
	}

	if input.BaseDir != "" {
		if info, err := os.Stat(filepath.Join(input.BaseDir, db.FileName)); err == nil {
			out.DatabaseSize = humanize.Bytes(uint64(info.Size()))
		}
	}

	return out, nil
}
