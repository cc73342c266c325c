// Package shopping aggregates ingredients across recipes into a combined
// shopping list. Grouping is by exact lowercased item name and, within an
// item, by literal unit string; no unit conversion or fuzzy item matching
// happens here.
package shopping

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jmorneau/ladle/internal/recipe"
)

// Source resolves recipe names case-insensitively. A nil recipe with a nil
// error means the name is not in the store.
type Source interface {
	FindByName(ctx context.Context, name string) (*recipe.Recipe, error)
}

// Entry is one ingredient occurrence collected into the list, tagged with
// the recipe it came from.
type Entry struct {
	// Amount is the quantity as stored on the source recipe
	Amount recipe.Amount `json:"amount"`

	// Unit is the unit string as written, possibly empty
	Unit string `json:"unit"`

	// Recipe is the source recipe's display name
	Recipe string `json:"recipe"`
}

// List maps lowercased ingredient item names to their collected entries,
// in recipe order. Lists are ephemeral: built per request, never stored.
type List map[string][]Entry

// Build collects the ingredients of the named recipes into a List. Names
// that resolve to no stored recipe are skipped without a trace; callers
// needing strictness must diff the result against their input themselves.
// Ingredients with an empty amount are collected as numeric zero so they
// join their unit bucket's sum instead of overwriting it.
func Build(ctx context.Context, src Source, names []string) (List, error) {
	list := make(List)

	for _, name := range names {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		r, err := src.FindByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if r == nil {
			continue
		}

		for _, ing := range r.Ingredients {
			item := strings.ToLower(ing.Item)
			amount := ing.Amount
			if !amount.IsNumeric() && amount.Text() == "" {
				amount = recipe.NumericAmount(decimal.Zero)
			}
			list[item] = append(list[item], Entry{
				Amount: amount,
				Unit:   ing.Unit,
				Recipe: r.Name,
			})
		}
	}

	return list, nil
}

// Format renders a List for display: a header, one checkbox line per item
// in lexicographic order, and a trailing blank line. An empty list renders
// a sentinel message instead.
//
// Within an item, unit buckets appear in first-seen order. Numeric amounts
// sharing a unit are summed; a free-form amount replaces whatever its
// bucket holds (last one wins), and a numeric amount following free-form
// text restarts the sum from that value. Buckets with a unit always render
// "amount unit"; unitless buckets render their bare amount only when it is
// non-zero.
func Format(list List) string {
	if len(list) == 0 {
		return "Shopping list is empty."
	}

	items := make([]string, 0, len(list))
	for item := range list {
		items = append(items, item)
	}
	slices.Sort(items)

	lines := []string{"\n--- Shopping List ---\n"}

	for _, item := range items {
		parts := make([]string, 0, 2)
		for _, b := range combine(list[item]) {
			if fragment, ok := renderBucket(b); ok {
				parts = append(parts, fragment)
			}
		}

		if len(parts) > 0 {
			lines = append(lines, fmt.Sprintf("  [ ] %s: %s", item, strings.Join(parts, ", ")))
		} else {
			lines = append(lines, fmt.Sprintf("  [ ] %s", item))
		}
	}

	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// bucket is one unit's combined amount within an item.
type bucket struct {
	unit  string
	total recipe.Amount
}

// combine folds an item's entries into per-unit buckets, preserving the
// order units were first seen.
func combine(entries []Entry) []bucket {
	buckets := make([]bucket, 0, len(entries))
	index := make(map[string]int, len(entries))

	for _, e := range entries {
		i, seen := index[e.Unit]
		if !seen {
			index[e.Unit] = len(buckets)
			buckets = append(buckets, bucket{unit: e.Unit, total: e.Amount})
			continue
		}
		buckets[i].total = accumulate(buckets[i].total, e.Amount)
	}

	return buckets
}

// accumulate folds the next amount into a bucket's running total.
func accumulate(total, next recipe.Amount) recipe.Amount {
	d, ok := next.Decimal()
	if !ok {
		// Free-form text overwrites the bucket.
		return next
	}
	if t, ok := total.Decimal(); ok {
		return recipe.NumericAmount(t.Add(d))
	}
	// Numeric after free-form restarts the sum.
	return recipe.NumericAmount(d)
}

// renderBucket renders one "amount unit" fragment. The second return is
// false when the fragment should be omitted from the line.
func renderBucket(b bucket) (string, bool) {
	if b.unit != "" {
		return b.total.String() + " " + b.unit, true
	}
	if !b.total.IsZero() {
		return b.total.String(), true
	}
	return "", false
}
