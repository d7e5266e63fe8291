package recommend

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/advisor/internal/models"
)

func holdingValue(symbol string, value float64, account string) models.Holding {
	v := decimal.NewFromFloat(value)
	return models.Holding{Symbol: symbol, Value: &v, Account: account}
}

func decimalFromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func TestParse_StructuredResponse(t *testing.T) {
	raw := `## ACCOUNT: Trading

FOR EXISTING ASSETS:
- TICKER: AAPL, ACTION: BUY, AMOUNT: 2500, ACCOUNT: Trading, COMMENTS: Strong growth potential.
- TICKER: TSLA, ACTION: SELL, AMOUNT: 1500, ACCOUNT: Trading, COMMENTS: Overvalued.

## ACCOUNT: IRA
- TICKER: VTI, ACTION: BUY, AMOUNT: 5000, ACCOUNT: IRA, COMMENTS: [NEW ASSET] Broad market exposure.`

	result := Parse(raw, nil)

	require.Len(t, result.Recommendations, 3)
	assert.Empty(t, result.Recurring)

	first := result.Recommendations[0]
	assert.Equal(t, "AAPL", first.Ticker)
	assert.Equal(t, "BUY", first.Action)
	assert.True(t, first.Amount.IsNumeric())
	assert.Equal(t, 2500.0, first.Amount.Float64())
	assert.Equal(t, "Trading", first.Account)
	assert.Equal(t, "Strong growth potential.", first.Comments)

	assert.Equal(t, "TSLA", result.Recommendations[1].Ticker)
	assert.Equal(t, "SELL", result.Recommendations[1].Action)

	third := result.Recommendations[2]
	assert.Equal(t, "VTI", third.Ticker)
	assert.Equal(t, "IRA", third.Account)
	assert.Equal(t, "[NEW ASSET] Broad market exposure.", third.Comments)
}

func TestParse_CommaAndDollarAmount(t *testing.T) {
	raw := `- TICKER: ICWN, ACTION: BUY, AMOUNT: 2,300, COMMENTS: Test`

	result := Parse(raw, nil)

	require.Len(t, result.Recommendations, 1)
	rec := result.Recommendations[0]
	require.True(t, rec.Amount.IsNumeric())
	assert.Equal(t, 2300.0, rec.Amount.Float64())

	raw = `- TICKER: VOO, ACTION: BUY, AMOUNT: $1,250.50, ACCOUNT: IRA, COMMENTS: Test`
	result = Parse(raw, nil)
	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, 1250.50, result.Recommendations[0].Amount.Float64())
}

func TestParse_HoldZeroKeepsIntegerForm(t *testing.T) {
	raw := `- TICKER: MSFT, ACTION: HOLD, AMOUNT: 0, ACCOUNT: Trading, COMMENTS: Keep position.`

	result := Parse(raw, nil)

	require.Len(t, result.Recommendations, 1)
	rec := result.Recommendations[0]
	require.True(t, rec.Amount.IsNumeric())
	assert.Equal(t, "0", rec.Amount.String())

	data, err := json.Marshal(rec.Amount)
	require.NoError(t, err)
	assert.Equal(t, "0", string(data))

	// A BUY amount keeps its decimal form when serialized.
	buy := Parse(`- TICKER: AAPL, ACTION: BUY, AMOUNT: 2300, COMMENTS: x`, nil)
	data, err = json.Marshal(buy.Recommendations[0].Amount)
	require.NoError(t, err)
	assert.Equal(t, "2300.0", string(data))
}

func TestParse_NonNumericAmountPassesThrough(t *testing.T) {
	raw := `- TICKER: ICWN, ACTION: BUY, AMOUNT: N/A, COMMENTS: Test`

	result := Parse(raw, nil)

	require.Len(t, result.Recommendations, 1)
	rec := result.Recommendations[0]
	assert.False(t, rec.Amount.IsNumeric())
	assert.Equal(t, "N/A", rec.Amount.Raw())
}

func TestParse_LegacyLabels(t *testing.T) {
	raw := `- Symbol: NVDA, ACTION: BUY, QUANTITY: 2,300, REASON: Momentum play`

	result := Parse(raw, nil)

	require.Len(t, result.Recommendations, 1)
	rec := result.Recommendations[0]
	assert.Equal(t, "NVDA", rec.Ticker)
	assert.Equal(t, 2300.0, rec.Amount.Float64())
	assert.Equal(t, "Momentum play", rec.Comments)
}

func TestParse_BracketedTicker(t *testing.T) {
	raw := `- TICKER: [AAPL], ACTION: BUY, AMOUNT: 1000, COMMENTS: x`

	result := Parse(raw, nil)

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "AAPL", result.Recommendations[0].Ticker)
}

func TestParse_TickerRecoveryFromHoldings(t *testing.T) {
	holdings := []models.Holding{
		holdingValue("AAPL", 1000, "Trading"),
		holdingValue("GOOG", 2000, "Trading"),
	}
	raw := `- GOOG looks strong, ACTION: BUY, AMOUNT: 500, COMMENTS: no ticker label`

	result := Parse(raw, holdings)

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "GOOG", result.Recommendations[0].Ticker)
}

func TestParse_MalformedLineYieldsSentinel(t *testing.T) {
	raw := `- TICKER: AAPL, ACTION: BUY, AMOUNT: 1000, COMMENTS: good line
- this dashed line has no recognizable fields at all`

	result := Parse(raw, nil)

	require.Len(t, result.Recommendations, 2)
	sentinel := result.Recommendations[1]
	assert.Equal(t, models.TickerParseError, sentinel.Ticker)
	assert.Equal(t, models.ActionUnknown, sentinel.Action)
	assert.Equal(t, "UNKNOWN", sentinel.Amount.Raw())
	assert.Equal(t, models.DefaultAccount, sentinel.Account)
	assert.Contains(t, sentinel.Comments, "Error parsing:")

	// One bad line never poisons its neighbors.
	assert.Equal(t, "AAPL", result.Recommendations[0].Ticker)
}

func TestParse_EmptyResponseYieldsRawResponseFallback(t *testing.T) {
	raw := "I'm sorry, I can't produce recommendations for this portfolio."

	result := Parse(raw, nil)

	require.Len(t, result.Recommendations, 1)
	rec := result.Recommendations[0]
	assert.Equal(t, models.TickerRawResponse, rec.Ticker)
	assert.Equal(t, models.ActionUnknown, rec.Action)
	assert.Equal(t, models.DefaultAccount, rec.Account)
	assert.Equal(t, raw, rec.Comments)
}

func TestParse_NeverReturnsEmptyRecommendations(t *testing.T) {
	for _, raw := range []string{"", "   \n\n  ", "## ACCOUNT: Trading", "plain prose"} {
		result := Parse(raw, nil)
		assert.NotEmpty(t, result.Recommendations, "input %q", raw)
	}
}

func TestParse_RecurringSectionRouting(t *testing.T) {
	raw := `## ACCOUNT: Trading
- TICKER: AAPL, ACTION: BUY, AMOUNT: 2500, ACCOUNT: Trading, COMMENTS: Existing position.

## RECURRING INVESTMENTS (Monthly Allocation)
- TICKER: VOO, ACTION: BUY, AMOUNT: 400, COMMENTS: Low-cost S&P 500 exposure.
- TICKER: CASH, ACTION: BUY, AMOUNT: 100, COMMENTS: Reserve.

## ACCOUNT: IRA
- TICKER: VTI, ACTION: BUY, AMOUNT: 1000, ACCOUNT: IRA, COMMENTS: Back in account section.`

	result := Parse(raw, nil)

	require.Len(t, result.Recurring, 2)
	assert.Equal(t, "VOO", result.Recurring[0].Ticker)
	assert.Equal(t, "CASH", result.Recurring[1].Ticker)
	assert.Equal(t, models.DefaultAccount, result.Recurring[0].Account)

	require.Len(t, result.Recommendations, 2)
	assert.Equal(t, "AAPL", result.Recommendations[0].Ticker)
	assert.Equal(t, "VTI", result.Recommendations[1].Ticker)
}

func TestParse_DefaultAccount(t *testing.T) {
	raw := `- TICKER: AAPL, ACTION: BUY, AMOUNT: 1000, COMMENTS: no account field`

	result := Parse(raw, nil)

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, models.DefaultAccount, result.Recommendations[0].Account)
}

func TestParse_ActionPassedThroughUninterpreted(t *testing.T) {
	raw := `- TICKER: AAPL, ACTION: Trim, AMOUNT: 500, COMMENTS: lowercase-ish action`

	result := Parse(raw, nil)

	require.Len(t, result.Recommendations, 1)
	assert.Equal(t, "Trim", result.Recommendations[0].Action)
}

func TestExtractFeedback_ExplicitMarker(t *testing.T) {
	raw := "- TICKER: AAPL, ACTION: BUY, AMOUNT: 100, COMMENTS: x\n\nFEEDBACK:\nSome text"

	result := Parse(raw, nil)

	assert.Equal(t, "Some text", result.Feedback)
}

func TestExtractFeedback_HeaderMarker(t *testing.T) {
	raw := "- TICKER: AAPL, ACTION: BUY, AMOUNT: 100, COMMENTS: x\n\n### Feedback: overall the portfolio is solid."

	result := Parse(raw, nil)

	assert.Equal(t, "overall the portfolio is solid.", result.Feedback)
}

func TestExtractFeedback_TrailingProseAfterLastRecommendation(t *testing.T) {
	raw := `- TICKER: AAPL, ACTION: BUY, AMOUNT: 100, COMMENTS: x
- TICKER: TSLA, ACTION: SELL, AMOUNT: 200, COMMENTS: y

Overall this portfolio is well balanced.
Consider rebalancing quarterly.`

	result := Parse(raw, nil)

	assert.Equal(t, "Overall this portfolio is well balanced.\nConsider rebalancing quarterly.", result.Feedback)
}

func TestExtractFeedback_NoMarkerNoRecommendations(t *testing.T) {
	result := Parse("just some prose with no structure", nil)
	assert.Equal(t, "", result.Feedback)
}

func TestGroupByAccount(t *testing.T) {
	recs := []models.Recommendation{
		{Ticker: "AAPL", Account: "Trading"},
		{Ticker: "VTI", Account: "IRA"},
		{Ticker: "TSLA", Account: "Trading"},
		{Ticker: "CASH", Account: ""},
	}

	groups := GroupByAccount(recs)

	require.Len(t, groups, 3)
	assert.Equal(t, "Trading", groups[0].Account)
	assert.Len(t, groups[0].Recommendations, 2)
	assert.Equal(t, "IRA", groups[1].Account)
	assert.Equal(t, models.DefaultAccount, groups[2].Account)
}
