package models

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is the value attached to a recommendation line. The LLM usually
// emits a dollar figure, but malformed output ("N/A", "UNKNOWN", prose) is
// carried through verbatim rather than rejected, so Amount is a sum of two
// shapes: a numeric value or a raw pass-through string.
//
// A numeric amount additionally remembers whether it was produced as an
// integer: a HOLD line with AMOUNT: 0 serializes as 0, while monetary
// amounts serialize with a decimal point (2300.0). Consumers of the legacy
// API distinguish the two.
type Amount struct {
	numeric bool
	integer bool
	value   decimal.Decimal
	raw     string
}

// NumericAmount returns a numeric Amount.
func NumericAmount(d decimal.Decimal) Amount {
	return Amount{numeric: true, value: d}
}

// IntegerAmount returns a numeric Amount that serializes without a decimal
// point. Used for the HOLD zero.
func IntegerAmount(n int64) Amount {
	return Amount{numeric: true, integer: true, value: decimal.NewFromInt(n)}
}

// RawAmount returns a pass-through Amount carrying unparseable text.
func RawAmount(s string) Amount {
	return Amount{raw: s}
}

// UnknownAmount is the sentinel used on parse failure.
func UnknownAmount() Amount {
	return RawAmount("UNKNOWN")
}

// IsNumeric reports whether the amount holds a parsed number.
func (a Amount) IsNumeric() bool {
	return a.numeric
}

// Decimal returns the numeric value, or zero for raw amounts.
func (a Amount) Decimal() decimal.Decimal {
	if !a.numeric {
		return decimal.Zero
	}
	return a.value
}

// Raw returns the pass-through text, or "" for numeric amounts.
func (a Amount) Raw() string {
	if a.numeric {
		return ""
	}
	return a.raw
}

// Float64 returns the numeric value as a float, or 0 for raw amounts.
func (a Amount) Float64() float64 {
	if !a.numeric {
		return 0
	}
	return a.value.InexactFloat64()
}

// Coerce converts the amount to a decimal, stripping "$" and thousands
// separators from raw text. Unparseable raw text coerces to zero.
func (a Amount) Coerce() decimal.Decimal {
	if a.numeric {
		return a.value
	}
	cleaned := strings.TrimSpace(a.raw)
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// String renders the amount the way it serializes.
func (a Amount) String() string {
	if !a.numeric {
		return a.raw
	}
	if a.integer {
		return a.value.String()
	}
	if a.value.IsInteger() {
		return a.value.String() + ".0"
	}
	return a.value.String()
}

// MarshalJSON writes numeric amounts as JSON numbers (integer form for the
// HOLD zero, decimal form otherwise) and raw amounts as JSON strings.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.numeric {
		return []byte(a.String()), nil
	}
	return json.Marshal(a.raw)
}

// UnmarshalJSON accepts either a JSON number or a string. Numbers without a
// decimal point are restored as integer amounts.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = RawAmount(s)
		return nil
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return err
	}
	if !strings.ContainsAny(string(data), ".eE") {
		if n, err := strconv.ParseInt(string(data), 10, 64); err == nil {
			*a = IntegerAmount(n)
			return nil
		}
	}
	*a = NumericAmount(d)
	return nil
}
