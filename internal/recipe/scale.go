package recipe

import "github.com/shopspring/decimal"

// Scale returns a copy of r with numeric ingredient amounts linearly scaled
// to newServings. The scale factor is newServings/r.Servings; recipes with
// zero servings use a factor of 1 so their amounts pass through unchanged.
// Scaled amounts are rounded to 2 decimal places, half to even. Free-form
// amounts are carried over as written.
//
// The result's Servings is set to newServings without validation; guarding
// against nonsensical serving counts is the caller's concern. Scale never
// touches the store and never mutates r.
func Scale(r Recipe, newServings int) Recipe {
	factor := decimal.NewFromInt(1)
	if r.Servings != 0 {
		factor = decimal.NewFromInt(int64(newServings)).Div(decimal.NewFromInt(int64(r.Servings)))
	}

	scaled := r
	scaled.Servings = newServings
	scaled.Ingredients = make([]Ingredient, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ing.Amount = scaleAmount(ing.Amount, factor)
		scaled.Ingredients[i] = ing
	}

	return scaled
}

// scaleAmount multiplies numeric amounts by factor, rounded half to even at
// 2 decimal places. Free-form amounts come back unchanged.
func scaleAmount(a Amount, factor decimal.Decimal) Amount {
	d, ok := a.Decimal()
	if !ok {
		return a
	}
	return NumericAmount(d.Mul(factor).RoundBank(2))
}
