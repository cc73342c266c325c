package recipe

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseIngredient parses a free-form ingredient line such as "2 cups flour"
// into amount, unit, and item. The first field becomes the amount (numeric
// when it parses as a number, free-form text otherwise), the second the
// unit, and the rest the item. Lines with fewer than three fields become a
// bare item with no amount or unit.
func ParseIngredient(line string) Ingredient {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Ingredient{Item: strings.TrimSpace(line)}
	}

	amount := FreeformAmount(fields[0])
	if d, err := decimal.NewFromString(fields[0]); err == nil {
		amount = NumericAmount(d)
	}

	return Ingredient{
		Item:   strings.Join(fields[2:], " "),
		Amount: amount,
		Unit:   fields[1],
	}
}
