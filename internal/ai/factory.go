// Package ai selects and drives LLM providers for the advisor endpoints.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/advisor/internal/clients/gemini"
	"github.com/bobmcallan/advisor/internal/clients/openai"
	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
)

// Endpoint identifies which advisor operation a provider is created for.
// Recommendations may use a different model than analysis and chat.
type Endpoint string

const (
	EndpointAnalysis        Endpoint = "analysis"
	EndpointRecommendations Endpoint = "recommendations"
	EndpointChat            Endpoint = "chat"
)

// CreateProvider builds the LLM provider configured for the given endpoint.
func CreateProvider(ctx context.Context, cfg common.AIConfig, endpoint Endpoint, logger *common.Logger) (interfaces.LLMProvider, error) {
	name := cfg.AnalysisProvider
	switch endpoint {
	case EndpointRecommendations:
		name = cfg.RecommendationsProvider
	case EndpointChat:
		name = cfg.ChatProvider
	}

	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "OPENAI":
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("OpenAI provider selected for %s but no API key configured", endpoint)
		}
		model := cfg.OpenAI.Model
		if endpoint == EndpointRecommendations && cfg.OpenAI.RecommendationsModel != "" {
			model = cfg.OpenAI.RecommendationsModel
		}
		return openai.NewClient(cfg.OpenAI.APIKey,
			openai.WithModel(model),
			openai.WithLogger(logger),
		), nil

	case "GEMINI":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("Gemini provider selected for %s but no API key configured", endpoint)
		}
		model := cfg.Gemini.Model
		if endpoint == EndpointRecommendations && cfg.Gemini.RecommendationsModel != "" {
			model = cfg.Gemini.RecommendationsModel
		}
		return gemini.NewClient(ctx, cfg.Gemini.APIKey,
			gemini.WithModel(model),
			gemini.WithLogger(logger),
		)

	default:
		return nil, fmt.Errorf("unknown AI provider %q for %s", name, endpoint)
	}
}
