package ops

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jmorneau/ladle/internal/errors"
	"github.com/jmorneau/ladle/internal/recipe"
	"github.com/jmorneau/ladle/internal/units"
)

// ConvertInput contains parameters for the Convert operation.
type ConvertInput struct {
	Amount decimal.Decimal
	From   string
	To     string
}

// ConvertOutput contains the result of the Convert operation.
type ConvertOutput struct {
	Amount recipe.Amount `json:"amount"`
	From   string        `json:"from"`
	To     string        `json:"to"`
	Result recipe.Amount `json:"result"`
}

// Convert converts an amount between two units of the same measurement
// domain. Unknown units or a cross-domain pair are invalid requests.
func Convert(input ConvertInput) (*ConvertOutput, error) {
	from := strings.TrimSpace(input.From)
	to := strings.TrimSpace(input.To)
	if from == "" || to == "" {
		return nil, errors.NewInvalidRequest("from and to units are required")
	}

	result, ok := units.Convert(input.Amount, from, to)
	if !ok {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("cannot convert %s to %s", from, to))
	}

	return &ConvertOutput{
		Amount: recipe.NumericAmount(input.Amount),
		From:   from,
		To:     to,
		Result: recipe.NumericAmount(result),
	}, nil
}
