package prompts

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/advisor/internal/models"
)

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestFormatPortfolioSummary(t *testing.T) {
	holdings := []models.Holding{
		{Symbol: "AAPL", Shares: decPtr(10), Value: decPtr(2000), CurrentPrice: decPtr(200), Type: "Stock", Account: "Trading"},
		{Symbol: "VTI", Value: decPtr(1500.50), Type: "ETF"},
	}

	summary := FormatPortfolioSummary(holdings, 3500.50, 1000, []string{"Stock", "ETF"}, "Long-term growth")

	assert.Contains(t, summary, "- Total Portfolio Value: $4,500.50")
	assert.Contains(t, summary, "- Investment Assets Value: $3,500.50")
	assert.Contains(t, summary, "- Available Cash: $1,000.00")
	assert.Contains(t, summary, "- Number of Assets: 2")
	assert.Contains(t, summary, "- Asset Types: Stock, ETF")
	assert.Contains(t, summary, "Investment Goals:\nLong-term growth")
	assert.Contains(t, summary, "- TICKER: AAPL | Type: Stock | Value: $2,000.00 | Account: Trading")
	assert.Contains(t, summary, "Shares: 10 | Current Price: $200")
	assert.Contains(t, summary, "- TICKER: VTI | Type: ETF | Value: $1,500.50")
	assert.Contains(t, summary, "Shares: N/A | Current Price: $N/A")
}

func TestFormatPortfolioSummary_EmptyTypes(t *testing.T) {
	summary := FormatPortfolioSummary(nil, 0, 0, nil, "")
	assert.Contains(t, summary, "- Asset Types: Not specified")
	assert.NotContains(t, summary, "Investment Goals:")
}

func TestBuildAnalysisMessages(t *testing.T) {
	messages := BuildAnalysisMessages("SUMMARY-MARKER")

	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "professional financial advisor")
	assert.Equal(t, models.RoleUser, messages[1].Role)
	assert.Contains(t, messages[1].Content, "SUMMARY-MARKER")
	assert.Contains(t, messages[1].Content, "1. Overall portfolio assessment")
}

func TestBuildRecommendationsMessages(t *testing.T) {
	messages := BuildRecommendationsMessages("SUMMARY-MARKER", "ANALYSIS-MARKER", "growth", "chat context", 500)

	require.Len(t, messages, 2)
	user := messages[1].Content
	assert.Contains(t, user, "SUMMARY-MARKER")
	assert.Contains(t, user, "ANALYSIS-MARKER")
	assert.Contains(t, user, "INVESTMENT GOALS:\ngrowth")
	assert.Contains(t, user, "CONVERSATION CONTEXT:\nchat context")
	assert.Contains(t, user, "MONTHLY CASH AVAILABLE FOR INVESTMENT:\n500.00")

	// The parser depends on the exact response-format instructions.
	assert.Contains(t, user, "## ACCOUNT: [ACCOUNT NAME]")
	assert.Contains(t, user, `"## RECURRING INVESTMENTS (Monthly Allocation)"`)
	assert.Contains(t, user, `a section titled "FEEDBACK:"`)
	assert.Contains(t, user, "Use ONLY these ACTION values: BUY, HOLD, SELL, or MOVE")
	assert.Contains(t, user, "For HOLD actions, use AMOUNT: 0")
}

func TestTemplates_GenerationParameters(t *testing.T) {
	assert.Equal(t, 1000, PortfolioAnalysis.MaxTokens)
	assert.Equal(t, float32(0.7), PortfolioAnalysis.Temperature)
	assert.Equal(t, 1200, PortfolioRecommendations.MaxTokens)
	assert.Equal(t, float32(0.7), PortfolioRecommendations.Temperature)
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{999.5, "999.50"},
		{1000, "1,000.00"},
		{1234567.89, "1,234,567.89"},
		{-4500.25, "-4,500.25"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(tt.in), "value %v", tt.in)
	}
}

func TestChatMessages(t *testing.T) {
	messages := Chat.Messages("What should I buy?")
	require.Len(t, messages, 2)
	assert.Equal(t, models.RoleSystem, messages[0].Role)
	assert.True(t, strings.Contains(messages[1].Content, "What should I buy?"))
}
