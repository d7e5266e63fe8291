// Package recommend converts raw LLM recommendation text into validated,
// structured records and derives aggregate cash-flux metrics from them.
package recommend

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/advisor/internal/models"
)

// Field labels the LLM is instructed to emit. TICKER/AMOUNT/COMMENTS are the
// primary labels; Symbol/QUANTITY/REASON are legacy spellings still seen in
// older model output.
const (
	labelTicker       = "TICKER:"
	labelTickerLegacy = "Symbol:"
	labelAction       = "ACTION:"
	labelAmount       = "AMOUNT:"
	labelAmountLegacy = "QUANTITY:"
	labelAccount      = "ACCOUNT:"
	labelComments     = "COMMENTS:"
	labelRecLegacy    = "REASON:"
)

var errNoFields = errors.New("no recognized field labels in line")

// lineFields is the tagged-field map produced by tokenizing one dashed line.
// Presence flags distinguish an empty value from an absent label.
type lineFields struct {
	ticker     string
	hasTicker  bool
	action     string
	hasAction  bool
	amountRaw  string
	hasAmount  bool
	account    string
	hasAccount bool
	comments   string
}

// tokenizeLine slices one dashed line (leading dash already stripped) into
// labeled fields. It fails only when the line carries no recognized label at
// all; individual fields are extracted independently so one garbled field
// never hides the others.
func tokenizeLine(line string) (lineFields, error) {
	var f lineFields

	if v, ok := afterLabel(line, labelTicker); ok {
		f.ticker, f.hasTicker = cleanTicker(untilComma(v)), true
	} else if v, ok := afterLabel(line, labelTickerLegacy); ok {
		f.ticker, f.hasTicker = cleanTicker(untilComma(v)), true
	}

	if v, ok := afterLabel(line, labelAction); ok {
		f.action, f.hasAction = strings.TrimSpace(untilComma(v)), true
	}

	if v, ok := afterLabel(line, labelAmount); ok {
		f.amountRaw, f.hasAmount = trimAmount(v), true
	} else if v, ok := afterLabel(line, labelAmountLegacy); ok {
		f.amountRaw, f.hasAmount = trimAmount(v), true
	}

	if v, ok := afterLabel(line, labelAccount); ok {
		f.account, f.hasAccount = strings.TrimSpace(untilComma(v)), true
	}

	if v, ok := afterLabel(line, labelComments); ok {
		f.comments = strings.TrimSpace(v)
	} else if v, ok := afterLabel(line, labelRecLegacy); ok {
		f.comments = strings.TrimSpace(v)
	}

	if !f.hasTicker && !f.hasAction && !f.hasAmount && !f.hasAccount && f.comments == "" {
		return lineFields{}, errNoFields
	}

	return f, nil
}

// afterLabel returns the text following the first occurrence of label.
func afterLabel(line, label string) (string, bool) {
	idx := strings.Index(line, label)
	if idx < 0 {
		return "", false
	}
	return line[idx+len(label):], true
}

// untilComma returns the text up to the next comma, or the whole string.
func untilComma(s string) string {
	if idx := strings.IndexByte(s, ','); idx >= 0 {
		return s[:idx]
	}
	return s
}

// cleanTicker trims whitespace and any enclosing brackets the model added.
func cleanTicker(s string) string {
	return strings.Trim(strings.TrimSpace(s), "[]")
}

// trimAmount cuts the amount segment at the next field label, trims
// whitespace, and strips a single trailing comma. The "$2,300," in
// "AMOUNT: $2,300, ACCOUNT: IRA" becomes "$2,300".
func trimAmount(s string) string {
	for _, stop := range []string{labelAccount, labelComments, labelRecLegacy} {
		if idx := strings.Index(s, stop); idx >= 0 {
			s = s[:idx]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ",")
	return strings.TrimSpace(s)
}

// parseAmount turns the raw amount text into an Amount. Numeric text (after
// stripping "$" and thousands separators) becomes a numeric amount; a HOLD
// with exactly zero keeps integer form. Anything else is carried through as
// raw text rather than rejected.
func parseAmount(raw, action string) models.Amount {
	cleaned := strings.ReplaceAll(raw, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return models.RawAmount(raw)
	}

	if action == models.ActionHold && d.IsZero() {
		return models.IntegerAmount(0)
	}
	return models.NumericAmount(d)
}
