// Package advisor orchestrates the analysis, recommendation and chat flows:
// enrich the portfolio, compile the prompt, call the LLM, and post-process
// its output into structured responses.
package advisor

import (
	"context"
	"fmt"

	"github.com/bobmcallan/advisor/internal/ai"
	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
	"github.com/bobmcallan/advisor/internal/prompts"
	"github.com/bobmcallan/advisor/internal/recommend"
)

// Service implements the AdvisorService interface.
type Service struct {
	enricher        interfaces.Enricher
	market          interfaces.MarketDataClient
	analysis        interfaces.LLMProvider
	recommendations interfaces.LLMProvider
	chat            interfaces.LLMProvider
	conversations   interfaces.ConversationStore
	logger          *common.Logger
	debug           bool
}

// Options wires the service's collaborators.
type Options struct {
	Enricher        interfaces.Enricher
	Market          interfaces.MarketDataClient
	Analysis        interfaces.LLMProvider
	Recommendations interfaces.LLMProvider
	Chat            interfaces.LLMProvider
	Conversations   interfaces.ConversationStore
	Logger          *common.Logger
	Debug           bool
}

// NewService creates the advisor service.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{
		enricher:        opts.Enricher,
		market:          opts.Market,
		analysis:        opts.Analysis,
		recommendations: opts.Recommendations,
		chat:            opts.Chat,
		conversations:   opts.Conversations,
		logger:          logger,
		debug:           opts.Debug,
	}
}

// Analyze enriches the portfolio and returns the AI analysis. LLM failures
// are surfaced inline in the Analysis field, never as a request failure.
func (s *Service) Analyze(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	if len(req.Portfolio) == 0 {
		return nil, fmt.Errorf("portfolio data is required")
	}

	conv := s.resolveConversation(ctx, req.ConversationID, models.ConversationAnalysis)
	enriched := s.enricher.EnrichPortfolio(ctx, req.Portfolio)
	totalValue, assetTypes := portfolioStats(enriched)

	summary := prompts.FormatPortfolioSummary(enriched, totalValue, req.Cash, assetTypes, req.InvestmentGoals)
	messages := prompts.BuildAnalysisMessages(summary)

	collector := s.newCollector()
	manager := ai.NewRequestManager(s.analysis, s.logger, collector)
	result := manager.MakeRequest(ctx, messages, prompts.PortfolioAnalysis.MaxTokens, prompts.PortfolioAnalysis.Temperature)

	analysisText := result.Content
	if !result.Success {
		analysisText = fmt.Sprintf("AI analysis temporarily unavailable: %s", result.Error)
	}

	resp := &models.AnalyzeResponse{
		TotalValue:      totalValue,
		AssetCount:      len(enriched),
		AssetTypes:      assetTypes,
		Analysis:        analysisText,
		InvestmentGoals: req.InvestmentGoals,
		Portfolio:       enriched,
	}
	if conv != nil {
		s.saveSnapshot(ctx, conv, enriched)
		resp.ConversationID = conv.ID
	}
	if collector != nil {
		resp.AIDebug = collector.Entries()
	}
	return resp, nil
}

// Recommend enriches the portfolio, asks the LLM for recommendations, and
// parses its response into validated records plus the flux summary. LLM
// failures still yield a parsed (sentinel) response with the error inline.
func (s *Service) Recommend(ctx context.Context, req *models.RecommendRequest) (*models.RecommendResponse, error) {
	if len(req.Portfolio) == 0 {
		return nil, fmt.Errorf("portfolio data is required")
	}

	conv := s.resolveConversation(ctx, req.ConversationID, models.ConversationRecommendations)
	enriched := s.enricher.EnrichPortfolio(ctx, req.Portfolio)
	totalValue, assetTypes := portfolioStats(enriched)

	summary := prompts.FormatPortfolioSummary(enriched, totalValue, req.Cash, assetTypes, req.InvestmentGoals)
	messages := prompts.BuildRecommendationsMessages(summary, req.Analysis, req.InvestmentGoals, req.Chat, req.MonthlyCash)

	collector := s.newCollector()
	manager := ai.NewRequestManager(s.recommendations, s.logger, collector)
	result := manager.MakeRequest(ctx, messages, prompts.PortfolioRecommendations.MaxTokens, prompts.PortfolioRecommendations.Temperature)

	rawText := result.Content
	if !result.Success {
		rawText = fmt.Sprintf("AI recommendations temporarily unavailable: %s", result.Error)
	}

	parsed := recommend.Parse(rawText, enriched)
	validated := recommend.ApplyMoveValidation(parsed.Recommendations, enriched)
	flux := recommend.ComputeAssetFlux(validated, enriched)

	resp := &models.RecommendResponse{
		Recommendations:      recommend.GroupByAccount(validated),
		RecurringInvestments: parsed.Recurring,
		Feedback:             parsed.Feedback,
		AssetFlux:            &flux,
	}
	if !result.Success {
		resp.Error = result.Error
	}
	if conv != nil {
		s.saveSnapshot(ctx, conv, enriched)
		resp.ConversationID = conv.ID
	}
	if collector != nil {
		resp.AIDebug = collector.Entries()
	}
	return resp, nil
}

// Chat answers a free-form question with the portfolio as context.
func (s *Service) Chat(ctx context.Context, req *models.ChatRequest) (*models.ChatResponse, error) {
	if req.Message == "" {
		return nil, fmt.Errorf("message is required")
	}

	conv := s.resolveConversation(ctx, req.ConversationID, models.ConversationChat)

	userContent := req.Message
	var enriched []models.Holding
	if len(req.Portfolio) > 0 {
		enriched = s.enricher.EnrichPortfolio(ctx, req.Portfolio)
		totalValue, assetTypes := portfolioStats(enriched)
		summary := prompts.FormatPortfolioSummary(enriched, totalValue, req.Cash, assetTypes, req.InvestmentGoals)
		userContent = fmt.Sprintf("%s\n\nQuestion:\n%s", summary, req.Message)
	}

	messages := prompts.Chat.Messages(userContent)
	collector := s.newCollector()
	manager := ai.NewRequestManager(s.chat, s.logger, collector)
	result := manager.MakeRequest(ctx, messages, prompts.Chat.MaxTokens, prompts.Chat.Temperature)

	resp := &models.ChatResponse{Reply: result.Content}
	if !result.Success {
		resp.Reply = fmt.Sprintf("AI chat temporarily unavailable: %s", result.Error)
		resp.Error = result.Error
	}
	if conv != nil {
		if enriched != nil {
			s.saveSnapshot(ctx, conv, enriched)
		}
		resp.ConversationID = conv.ID
	}
	if collector != nil {
		resp.AIDebug = collector.Entries()
	}
	return resp, nil
}

// TickerInfo looks up live market data for one symbol.
func (s *Service) TickerInfo(ctx context.Context, symbol string) (*models.TickerInfo, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	return s.market.Lookup(ctx, symbol)
}

func (s *Service) newCollector() *ai.DebugCollector {
	if !s.debug {
		return nil
	}
	return ai.NewDebugCollector()
}

// portfolioStats sums the holdings' resolved values and collects the
// distinct asset types in portfolio order.
func portfolioStats(holdings []models.Holding) (float64, []string) {
	total := 0.0
	seen := make(map[string]struct{})
	var types []string
	for _, h := range holdings {
		total += h.ResolvedValue().InexactFloat64()
		if h.Type != "" {
			if _, ok := seen[h.Type]; !ok {
				seen[h.Type] = struct{}{}
				types = append(types, h.Type)
			}
		}
	}
	return total, types
}

// Ensure Service implements AdvisorService
var _ interfaces.AdvisorService = (*Service)(nil)
