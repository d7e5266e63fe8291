package models

import (
	"encoding/json"
	"time"
)

// Conversation types.
const (
	ConversationAnalysis        = "analysis"
	ConversationRecommendations = "recommendations"
	ConversationChat            = "chat"
)

// Conversation is a persisted thread of analysis, recommendations or chat.
// ThreadID identifies the provider-side thread; for providers without server
// threads it is a locally generated UUID. LastPortfolio holds the most
// recent portfolio snapshot as raw JSON to give follow-up turns context.
type Conversation struct {
	ID            string          `json:"id" badgerhold:"key"`
	UserID        string          `json:"user_id"`
	ThreadID      string          `json:"thread_id"`
	Type          string          `json:"conversation_type"`
	LastPortfolio json.RawMessage `json:"last_portfolio,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"last_updated"`
}
