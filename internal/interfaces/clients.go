// Package interfaces defines service contracts for Advisor
package interfaces

import (
	"context"

	"github.com/bobmcallan/advisor/internal/models"
)

// MarketDataClient provides live quote and classification lookups.
type MarketDataClient interface {
	// Lookup retrieves the current price and instrument classification for
	// a symbol. Errors are per-symbol; callers degrade gracefully.
	Lookup(ctx context.Context, symbol string) (*models.TickerInfo, error)
}

// LLMProvider generates chat completions. One blocking call per request;
// failures are returned as errors for the caller to surface inline.
type LLMProvider interface {
	// ChatCompletion sends the messages and returns the generated text.
	ChatCompletion(ctx context.Context, messages []models.ChatMessage, maxTokens int, temperature float32) (string, error)

	// ProviderName returns the provider label ("OpenAI", "Gemini").
	ProviderName() string

	// ModelName returns the configured model identifier.
	ModelName() string
}
