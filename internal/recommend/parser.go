package recommend

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/advisor/internal/models"
)

// recurringSectionMarker identifies the monthly-allocation header. Any other
// "##" header (account headers included) switches parsing back to the
// account recommendations section.
const recurringSectionMarker = "recurring investment"

// ParseResult is the structured output extracted from one LLM response.
type ParseResult struct {
	Recommendations []models.Recommendation
	Recurring       []models.Recommendation
	Feedback        string
}

// sectionState is the accumulator threaded through the line scan. The only
// state between lines is which section the scan is currently inside.
type sectionState struct {
	inRecurring bool
	result      ParseResult
}

// Parse converts raw LLM text into recommendation records. Dashed lines are
// parsed into structured records; "##" headers route subsequent lines into
// the account or recurring section; all other lines are prose and skipped.
// Holdings are used only to recover ticker symbols from lines where the
// model omitted the TICKER label.
//
// Parse never fails: a malformed line becomes a PARSE_ERROR sentinel record,
// and a response yielding no recommendations at all becomes a single
// RAW_RESPONSE record carrying the full text.
func Parse(rawText string, holdings []models.Holding) ParseResult {
	knownSymbols := symbolsOf(holdings)
	lines := strings.Split(rawText, "\n")

	state := sectionState{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "##") {
			state.inRecurring = strings.Contains(strings.ToLower(trimmed), recurringSectionMarker)
			continue
		}

		if !strings.HasPrefix(trimmed, "-") {
			continue
		}

		rec := parseDashedLine(trimmed, knownSymbols)
		if state.inRecurring {
			state.result.Recurring = append(state.result.Recurring, rec)
		} else {
			state.result.Recommendations = append(state.result.Recommendations, rec)
		}
	}

	if len(state.result.Recommendations) == 0 {
		state.result.Recommendations = []models.Recommendation{{
			Ticker:   models.TickerRawResponse,
			Action:   models.ActionUnknown,
			Amount:   models.UnknownAmount(),
			Account:  models.DefaultAccount,
			Comments: rawText,
		}}
	}

	state.result.Feedback = extractFeedback(rawText, lines)
	return state.result
}

// parseDashedLine tokenizes and validates one dashed line. A line carrying
// no recognizable field at all yields the PARSE_ERROR sentinel.
func parseDashedLine(trimmed string, knownSymbols []string) models.Recommendation {
	body := strings.TrimSpace(strings.TrimLeft(trimmed, "-"))

	fields, err := tokenizeLine(body)
	if err != nil {
		return models.Recommendation{
			Ticker:   models.TickerParseError,
			Action:   models.ActionUnknown,
			Amount:   models.UnknownAmount(),
			Account:  models.DefaultAccount,
			Comments: fmt.Sprintf("Error parsing: %s", trimmed),
		}
	}

	ticker := fields.ticker
	if ticker == "" && fields.hasAction && fields.hasAmount {
		ticker = recoverTicker(body, knownSymbols)
	}

	action := fields.action
	if action == "" {
		action = models.ActionUnknown
	}

	amount := models.UnknownAmount()
	if fields.hasAmount {
		amount = parseAmount(fields.amountRaw, action)
	}

	account := fields.account
	if account == "" {
		account = models.DefaultAccount
	}

	return models.Recommendation{
		Ticker:   ticker,
		Action:   action,
		Amount:   amount,
		Account:  account,
		Comments: fields.comments,
	}
}

// recoverTicker scans the portfolio's known symbols for one mentioned
// anywhere in the line. Used when the model emitted an action and amount but
// dropped the TICKER label.
func recoverTicker(line string, knownSymbols []string) string {
	for _, sym := range knownSymbols {
		if sym != "" && strings.Contains(line, sym) {
			return sym
		}
	}
	return ""
}

// symbolsOf returns the holdings' symbols in portfolio order.
func symbolsOf(holdings []models.Holding) []string {
	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}
	return symbols
}
