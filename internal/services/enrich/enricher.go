// Package enrich merges user-submitted holdings with live market data.
package enrich

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

// DefaultWorkers bounds the concurrent market-data lookups per request.
const DefaultWorkers = 10

// Enricher fills in prices, derived share counts and asset types on a
// portfolio using a market-data client.
type Enricher struct {
	client  interfaces.MarketDataClient
	logger  *common.Logger
	workers int
}

// Option configures the enricher
type Option func(*Enricher)

// WithWorkers sets the lookup concurrency bound
func WithWorkers(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) Option {
	return func(e *Enricher) {
		e.logger = logger
	}
}

// NewEnricher creates an enricher backed by the given market-data client
func NewEnricher(client interfaces.MarketDataClient, opts ...Option) *Enricher {
	e := &Enricher{
		client:  client,
		logger:  common.NewSilentLogger(),
		workers: DefaultWorkers,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// EnrichPortfolio looks up live data for each holding and returns a new
// slice with prices, derived values/shares, and normalized asset types
// filled in. Lookups fan out across a bounded worker pool; a failed lookup
// leaves that holding exactly as submitted. The input slice is not mutated.
func (e *Enricher) EnrichPortfolio(ctx context.Context, holdings []models.Holding) []models.Holding {
	enriched := make([]models.Holding, len(holdings))
	copy(enriched, holdings)

	var wg sync.WaitGroup
	sem := make(chan struct{}, e.workers)

	for i := range enriched {
		wg.Add(1)
		sem <- struct{}{}
		go func(h *models.Holding) {
			defer wg.Done()
			defer func() { <-sem }()
			e.enrichHolding(ctx, h)
		}(&enriched[i])
	}

	wg.Wait()
	return enriched
}

func (e *Enricher) enrichHolding(ctx context.Context, h *models.Holding) {
	info, err := e.client.Lookup(ctx, h.Symbol)
	if err != nil {
		e.logger.Warn().Err(err).Str("symbol", h.Symbol).Msg("market data lookup failed, holding left as submitted")
		return
	}

	price := decimal.NewFromFloat(info.Price)
	h.CurrentPrice = &price

	switch {
	case h.Shares != nil && h.Value == nil:
		v := h.Shares.Mul(price)
		h.Value = &v
	case h.Value != nil && h.Shares == nil && !price.IsZero():
		s := h.Value.Div(price)
		h.Shares = &s
	}

	h.Type = NormalizeAssetType(info.Type)
}

// NormalizeAssetType maps a provider classification onto the fixed set of
// asset types the advisor works with. Unrecognized classifications default
// to Stock. Crypto is checked before currency so "cryptocurrency" does not
// land in the Currency bucket.
func NormalizeAssetType(classification string) string {
	c := strings.ToLower(classification)
	switch {
	case strings.Contains(c, "etf"):
		return models.AssetTypeETF
	case strings.Contains(c, "fund"):
		return models.AssetTypeMutualFund
	case strings.Contains(c, "crypto"):
		return models.AssetTypeCrypto
	case strings.Contains(c, "index"):
		return models.AssetTypeIndex
	case strings.Contains(c, "currency"), strings.Contains(c, "forex"):
		return models.AssetTypeCurrency
	default:
		return models.AssetTypeStock
	}
}

// Ensure Enricher implements the service interface
var _ interfaces.Enricher = (*Enricher)(nil)
