package recipe

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is an ingredient quantity: either a numeric value or free-form text
// such as "a pinch". Arithmetic applies only to numeric amounts; free-form
// text passes through every transformation untouched.
//
// The zero value is the empty free-form amount, which is also the default
// for records missing the field.
type Amount struct {
	value   decimal.Decimal
	text    string
	numeric bool
}

// NumericAmount creates a numeric amount.
func NumericAmount(d decimal.Decimal) Amount {
	return Amount{value: d, numeric: true}
}

// FreeformAmount creates a free-form text amount.
func FreeformAmount(s string) Amount {
	return Amount{text: s}
}

// IsNumeric reports whether the amount holds a numeric value.
func (a Amount) IsNumeric() bool {
	return a.numeric
}

// Decimal returns the numeric value. The second return is false for
// free-form amounts.
func (a Amount) Decimal() (decimal.Decimal, bool) {
	return a.value, a.numeric
}

// Text returns the free-form text. Empty for numeric amounts.
func (a Amount) Text() string {
	if a.numeric {
		return ""
	}
	return a.text
}

// IsZero reports whether the amount is numeric zero or the empty string.
// Zero amounts are omitted from unitless shopping-list fragments.
func (a Amount) IsZero() bool {
	if a.numeric {
		return a.value.IsZero()
	}
	return a.text == ""
}

// Equal reports whether two amounts hold the same value.
// Numeric comparison ignores representation (2 equals 2.0).
func (a Amount) Equal(b Amount) bool {
	if a.numeric != b.numeric {
		return false
	}
	if a.numeric {
		return a.value.Equal(b.value)
	}
	return a.text == b.text
}

// String renders the amount for display. Numeric values print without
// trailing zeros, so an integral value has no fractional part.
func (a Amount) String() string {
	if a.numeric {
		return a.value.String()
	}
	return a.text
}

// MarshalJSON encodes numeric amounts as bare JSON numbers and free-form
// amounts as JSON strings.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.numeric {
		return []byte(a.value.String()), nil
	}
	return json.Marshal(a.text)
}

// UnmarshalJSON decodes a JSON number to a numeric amount and a JSON string
// to a free-form amount. null decodes to the empty free-form amount.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("amount: empty JSON value")
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		*a = FreeformAmount(s)
		return nil
	case 'n':
		if string(data) == "null" {
			*a = Amount{}
			return nil
		}
		return fmt.Errorf("amount: invalid JSON value %q", data)
	case 't', 'f', '{', '[':
		return fmt.Errorf("amount: must be a number or string, got %q", data)
	default:
		d, err := decimal.NewFromString(string(data))
		if err != nil {
			return fmt.Errorf("amount: invalid number %q: %w", data, err)
		}
		*a = NumericAmount(d)
		return nil
	}
}
