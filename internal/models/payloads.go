package models

// AnalyzeRequest is the body of POST /api/portfolio/analyze.
type AnalyzeRequest struct {
	Portfolio       []Holding `json:"portfolio"`
	Cash            float64   `json:"cash"`
	InvestmentGoals string    `json:"investment_goals"`
	ConversationID  string    `json:"conversation_id,omitempty"`
}

// AnalyzeResponse carries the enriched summary and the AI analysis text.
// On LLM failure Analysis holds an inline error string; the endpoint still
// returns 200.
type AnalyzeResponse struct {
	TotalValue      float64     `json:"total_value"`
	AssetCount      int         `json:"asset_count"`
	AssetTypes      []string    `json:"asset_types"`
	Analysis        string      `json:"analysis"`
	InvestmentGoals string      `json:"investment_goals"`
	Portfolio       []Holding   `json:"portfolio"`
	ConversationID  string      `json:"conversation_id,omitempty"`
	AIDebug         interface{} `json:"ai_debug,omitempty"`
}

// RecommendRequest is the body of POST /api/portfolio/recommendations.
// Analysis carries the prior analysis text to ground the recommendations.
type RecommendRequest struct {
	Portfolio       []Holding `json:"portfolio"`
	Cash            float64   `json:"cash"`
	MonthlyCash     float64   `json:"monthly_cash"`
	InvestmentGoals string    `json:"investment_goals"`
	Analysis        string    `json:"analysis"`
	Chat            string    `json:"chat"`
	ConversationID  string    `json:"conversation_id,omitempty"`
}

// RecommendResponse carries parsed, validated recommendations grouped by
// account, the recurring monthly plan, advisor feedback and the flux
// summary. Error is set inline when the LLM call fails; the endpoint still
// returns 200.
type RecommendResponse struct {
	Recommendations      []AccountGroup   `json:"recommendations"`
	RecurringInvestments []Recommendation `json:"recurring_investments"`
	Feedback             string           `json:"feedback"`
	AssetFlux            *AssetFlux       `json:"asset_flux,omitempty"`
	ConversationID       string           `json:"conversation_id,omitempty"`
	Error                string           `json:"error,omitempty"`
	AIDebug              interface{}      `json:"ai_debug,omitempty"`
}

// ChatRequest is the body of POST /api/portfolio/chat.
type ChatRequest struct {
	Portfolio       []Holding `json:"portfolio"`
	Cash            float64   `json:"cash"`
	InvestmentGoals string    `json:"investment_goals"`
	Message         string    `json:"message"`
	ConversationID  string    `json:"conversation_id,omitempty"`
}

// ChatResponse carries the assistant reply for a chat turn.
type ChatResponse struct {
	Reply          string      `json:"reply"`
	ConversationID string      `json:"conversation_id,omitempty"`
	Error          string      `json:"error,omitempty"`
	AIDebug        interface{} `json:"ai_debug,omitempty"`
}

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterResponse returns the newly issued API key.
type RegisterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	APIKey   string `json:"api_key"`
}
