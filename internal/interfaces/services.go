package interfaces

import (
	"context"

	"github.com/bobmcallan/advisor/internal/models"
)

// Enricher merges submitted holdings with live market data.
type Enricher interface {
	// EnrichPortfolio returns a new slice; per-symbol lookup failures leave
	// the holding as submitted.
	EnrichPortfolio(ctx context.Context, holdings []models.Holding) []models.Holding
}

// AdvisorService orchestrates the analysis, recommendation and chat flows.
type AdvisorService interface {
	Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error)
	Recommend(ctx context.Context, req *models.RecommendRequest) (*models.RecommendResponse, error)
	Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error)
	TickerInfo(ctx context.Context, symbol string) (*models.TickerInfo, error)
}
