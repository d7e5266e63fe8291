// Package prompts holds the system and user prompt templates for the advisor
// endpoints along with the portfolio summary formatting they interpolate.
package prompts

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/advisor/internal/models"
)

// Template pairs a system message with generation parameters.
type Template struct {
	System      string
	MaxTokens   int
	Temperature float32
}

// PortfolioAnalysis is the template for the analyze endpoint.
var PortfolioAnalysis = Template{
	System: "You are a professional financial advisor with expertise in portfolio analysis " +
		"and investment strategy. Provide detailed, actionable insights based on the " +
		"portfolio data provided. Pay special attention to how assets are distributed across " +
		"different account types (e.g., Trading, IRA, 401k) and consider the appropriate " +
		"investment strategies for each account type.",
	MaxTokens:   1000,
	Temperature: 0.7,
}

// PortfolioRecommendations is the template for the recommendations endpoint.
var PortfolioRecommendations = Template{
	System: "You are a professional financial advisor specializing in actionable portfolio recommendations. " +
		"Your task is to provide specific buy, sell, hold, or move recommendations for each asset in " +
		"the portfolio, plus suggestions for new investments to improve portfolio balance. " +
		"Consider the user's available cash, MONTHLY CASH FLOW, investment goals, and account types when making recommendations. " +
		"Pay attention to how assets are distributed across different accounts (e.g., Trading, IRA, 401k) " +
		"and ensure your recommendations are appropriate for each account type. " +
		"Always provide specific dollar amounts for transactions, not vague quantities. " +
		"Group your recommendations by account type, treating assets without an account designation " +
		"as belonging to a 'Default' account. " +
		"In addition, devise a recurring monthly investment plan that makes strategic use of the user's available monthly_cash.",
	MaxTokens:   1200,
	Temperature: 0.7,
}

// Chat is the template for the conversational endpoint.
var Chat = Template{
	System: "You are a professional financial advisor. Answer the user's questions about " +
		"their portfolio and investment strategy. Be specific, concise, and actionable, and " +
		"use the portfolio context from the conversation when it is available.",
	MaxTokens:   1000,
	Temperature: 0.7,
}

// Messages builds the two-message system/user exchange every template uses.
func (t Template) Messages(userContent string) []models.ChatMessage {
	return []models.ChatMessage{
		{Role: models.RoleSystem, Content: t.System},
		{Role: models.RoleUser, Content: userContent},
	}
}

// FormatPortfolioSummary renders the holdings into the structured text block
// the templates interpolate. Ticker symbols lead each holding line so the
// model can echo them back exactly.
func FormatPortfolioSummary(holdings []models.Holding, totalValue, cash float64, assetTypes []string, investmentGoals string) string {
	var sb strings.Builder

	sb.WriteString("Portfolio Summary:\n")
	sb.WriteString(fmt.Sprintf("- Total Portfolio Value: $%s\n", formatMoney(totalValue+cash)))
	sb.WriteString(fmt.Sprintf("- Investment Assets Value: $%s\n", formatMoney(totalValue)))
	sb.WriteString(fmt.Sprintf("- Available Cash: $%s\n", formatMoney(cash)))
	sb.WriteString(fmt.Sprintf("- Number of Assets: %d\n", len(holdings)))

	types := "Not specified"
	if len(assetTypes) > 0 {
		types = strings.Join(assetTypes, ", ")
	}
	sb.WriteString(fmt.Sprintf("- Asset Types: %s", types))

	if investmentGoals != "" {
		sb.WriteString("\n\nInvestment Goals:\n")
		sb.WriteString(investmentGoals)
	}

	sb.WriteString("\n\nDetailed Holdings:")
	for _, h := range holdings {
		symbol := h.Symbol
		if symbol == "" {
			symbol = "Unknown"
		}
		assetType := h.Type
		if assetType == "" {
			assetType = "Unknown"
		}

		value := 0.0
		if h.Value != nil {
			value, _ = h.Value.Float64()
		}

		accountInfo := ""
		if h.Account != "" {
			accountInfo = fmt.Sprintf(" | Account: %s", h.Account)
		}

		shares := "N/A"
		if h.Shares != nil {
			shares = h.Shares.String()
		}
		price := "N/A"
		if h.CurrentPrice != nil {
			price = h.CurrentPrice.String()
		}

		sb.WriteString(fmt.Sprintf("\n- TICKER: %s | Type: %s | Value: $%s%s", symbol, assetType, formatMoney(value), accountInfo))
		sb.WriteString(fmt.Sprintf("\n  Shares: %s | Current Price: $%s", shares, price))
	}

	return sb.String()
}

// BuildAnalysisMessages assembles the analyze prompt.
func BuildAnalysisMessages(portfolioSummary string) []models.ChatMessage {
	user := fmt.Sprintf(`As a professional financial advisor, analyze the following portfolio and provide detailed insights:

%s

Please provide:
1. Overall portfolio assessment
2. Risk analysis
3. Diversification evaluation
4. Performance insights
5. Account-specific analysis (if multiple accounts are present)
6. Key strengths and weaknesses

Keep the analysis professional, concise, and actionable. Focus on portfolio balance, risk management, and growth potential.`, portfolioSummary)

	return PortfolioAnalysis.Messages(user)
}

// BuildRecommendationsMessages assembles the recommendations prompt, including
// the strict dash-delimited response format the parser depends on.
func BuildRecommendationsMessages(portfolioSummary, analysis, investmentGoals, chat string, monthlyCash float64) []models.ChatMessage {
	monthly := formatMoney(monthlyCash)

	user := fmt.Sprintf(`Based on the portfolio analysis below, provide specific actionable recommendations for each asset in this portfolio.

INVESTMENT GOALS:
%s

MONTHLY CASH AVAILABLE FOR INVESTMENT:
%s

CONVERSATION CONTEXT:
%s

PORTFOLIO ANALYSIS:
%s

PORTFOLIO DETAILS:
%s

RESPONSE FORMAT:
You MUST format your response as a structured list of recommendations grouped by account, with each recommendation strictly following this format:

## ACCOUNT: [ACCOUNT NAME]

FOR EXISTING ASSETS:
- TICKER: AAPL, ACTION: BUY, AMOUNT: 2500, ACCOUNT: Trading, COMMENTS: Strong growth potential and undervalued at current price.

FOR NEW INVESTMENTS:
- TICKER: VTI, ACTION: BUY, AMOUNT: 5000, ACCOUNT: IRA, COMMENTS: [NEW ASSET] Adds broad market exposure and diversification.

FOR SELLING ASSETS:
- TICKER: TSLA, ACTION: SELL, AMOUNT: 1500, ACCOUNT: Default, COMMENTS: Overvalued and high volatility risk.

FOR MOVING ASSETS:
- TICKER: IVV, ACTION: MOVE, AMOUNT: 300, ACCOUNT: IRA, COMMENTS: Move $300 of IVV to IRA.

IMPORTANT INSTRUCTIONS:
1. Each recommendation MUST start with a dash and appear on its own line
2. You MUST include the EXACT ticker symbol for each asset (do not leave TICKER blank or use placeholders)
3. For existing assets, use the ticker symbols provided in the portfolio details
4. For new investments, suggest SPECIFIC ticker symbols (not generic asset classes)
5. Use ONLY these ACTION values: BUY, HOLD, SELL, or MOVE
6. AMOUNT must be a specific dollar amount (e.g., 1000, 2500, 5000) representing the dollar value to buy/sell/move
7. For SELL actions, the amount should not exceed the current value of the holding
8. For MOVE actions, ensure the amount does not exceed the current value of the holding and specify the target ACCOUNT field
9. For BUY actions, ensure the total recommended purchases do not exceed available cash
10. For HOLD actions, use AMOUNT: 0 (no transaction needed)
11. Include brief COMMENTS limited to one sentence that aligns with the user's investment goals when applicable
12. When recommending NEW investments, ensure they align with the user's stated investment goals and always prefix the COMMENTS with "[NEW ASSET]" to clearly indicate it's a new addition
13. Take into account the user's available cash when suggesting purchases, and stay within those limits
14. Be strategic about dollar amounts - consider portfolio balance, risk management, and diversification
15. Group recommendations by account type with a header "## ACCOUNT: [ACCOUNT NAME]"
16. For assets without an account designation, group them under "## ACCOUNT: Default"
17. Include the ACCOUNT field in each recommendation line to clearly indicate which account it belongs to
18. When assets are in different account types (e.g., Trading, IRA, 401k), consider the appropriate investment strategies for each account type
19. For retirement accounts like IRAs and 401ks, focus on long-term growth and tax advantages
20. For taxable accounts, consider tax efficiency and shorter-term liquidity needs
21. New investment recommendations should be placed under the most appropriate account type

NEW REQUIREMENT - MONTHLY ALLOCATION PLAN:
After the account-based recommendations above, provide a separate section titled "## RECURRING INVESTMENTS (Monthly Allocation)". In that section:
* ONLY list BUY recommendations for how to allocate the %s amount EACH MONTH.
* The combined AMOUNT values in this section MUST NOT EXCEED %s.
* It is acceptable to leave a portion unallocated; in that case, include a line with TICKER: CASH to reflect the amount held in cash, or a treasury ETF (e.g., BIL, SHV) if recommending treasury bills.
* Follow the exact same dash-delimited structured format as other recommendations but omit the ACCOUNT field (assume "Default") unless you specifically want it in another account.

Example recurring investments section (illustrative):

## RECURRING INVESTMENTS (Monthly Allocation)
- TICKER: VOO, ACTION: BUY, AMOUNT: 400, COMMENTS: Low-cost S&P 500 exposure.
- TICKER: ICLN, ACTION: BUY, AMOUNT: 150, COMMENTS: Diversify into clean energy.
- TICKER: CASH, ACTION: BUY, AMOUNT: 250, COMMENTS: Keep cash reserve for future opportunities.

You MUST include this recurring investments section.

AFTER all recommendations and recurring investments, provide a section titled "FEEDBACK:" that contains your overall assessment, rationale, and strategic thinking behind your recommendations. This should include:
1. A summary of the current portfolio's strengths and weaknesses
2. The high-level strategy behind your recommendations
3. How your recommendations align with the user's investment goals
4. Any additional context or considerations the user should be aware of

Limit this feedback to a few paragraphs or less and make it conversational and actionable.`,
		investmentGoals, monthly, chat, analysis, portfolioSummary, monthly, monthly)

	return PortfolioRecommendations.Messages(user)
}

// formatMoney renders a dollar value with thousands separators and two
// decimal places, matching strconv-style rounding.
func formatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	sb.WriteString(fracPart)
	return sb.String()
}
