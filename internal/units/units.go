// Package units converts cooking measurements between volume and weight
// units. Each unit maps to a base factor (milliliters for volume, grams for
// weight); conversion goes through the base and only within one domain.
// There is no density table, so volume never converts to weight.
package units

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Domain names used by Supported and the units command output.
const (
	DomainVolume = "volume"
	DomainWeight = "weight"
)

// volumeToML maps recognized volume unit spellings to milliliters.
var volumeToML = map[string]decimal.Decimal{
	"ml":           decimal.NewFromInt(1),
	"milliliter":   decimal.NewFromInt(1),
	"milliliters":  decimal.NewFromInt(1),
	"l":            decimal.NewFromInt(1000),
	"liter":        decimal.NewFromInt(1000),
	"liters":       decimal.NewFromInt(1000),
	"tsp":          decimal.RequireFromString("4.929"),
	"teaspoon":     decimal.RequireFromString("4.929"),
	"teaspoons":    decimal.RequireFromString("4.929"),
	"tbsp":         decimal.RequireFromString("14.787"),
	"tablespoon":   decimal.RequireFromString("14.787"),
	"tablespoons":  decimal.RequireFromString("14.787"),
	"cup":          decimal.RequireFromString("236.588"),
	"cups":         decimal.RequireFromString("236.588"),
	"fl oz":        decimal.RequireFromString("29.574"),
	"fluid ounce":  decimal.RequireFromString("29.574"),
	"fluid ounces": decimal.RequireFromString("29.574"),
}

// weightToG maps recognized weight unit spellings to grams.
var weightToG = map[string]decimal.Decimal{
	"g":         decimal.NewFromInt(1),
	"gram":      decimal.NewFromInt(1),
	"grams":     decimal.NewFromInt(1),
	"kg":        decimal.NewFromInt(1000),
	"kilogram":  decimal.NewFromInt(1000),
	"kilograms": decimal.NewFromInt(1000),
	"oz":        decimal.RequireFromString("28.3495"),
	"ounce":     decimal.RequireFromString("28.3495"),
	"ounces":    decimal.RequireFromString("28.3495"),
	"lb":        decimal.RequireFromString("453.592"),
	"pound":     decimal.RequireFromString("453.592"),
	"pounds":    decimal.RequireFromString("453.592"),
}

// Convert converts amount from one unit to another. Unit names are
// case-insensitive and surrounding whitespace is ignored. The result is
// rounded to 3 decimal places, half to even. The second return is false
// when either unit is unknown or the units live in different domains.
func Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, bool) {
	from = normalizeUnit(from)
	to = normalizeUnit(to)

	if fromFactor, ok := volumeToML[from]; ok {
		toFactor, ok := volumeToML[to]
		if !ok {
			return decimal.Decimal{}, false
		}
		return convert(amount, fromFactor, toFactor), true
	}

	if fromFactor, ok := weightToG[from]; ok {
		toFactor, ok := weightToG[to]
		if !ok {
			return decimal.Decimal{}, false
		}
		return convert(amount, fromFactor, toFactor), true
	}

	return decimal.Decimal{}, false
}

// Known reports whether a unit name is in the conversion table.
func Known(unit string) bool {
	u := normalizeUnit(unit)
	_, vol := volumeToML[u]
	_, wgt := weightToG[u]
	return vol || wgt
}

// Supported returns the recognized unit spellings grouped by domain, each
// list sorted alphabetically.
func Supported() map[string][]string {
	return map[string][]string{
		DomainVolume: sortedKeys(volumeToML),
		DomainWeight: sortedKeys(weightToG),
	}
}

func normalizeUnit(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

func convert(amount, fromFactor, toFactor decimal.Decimal) decimal.Decimal {
	return amount.Mul(fromFactor).Div(toFactor).RoundBank(3)
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
