package ai

import (
	"context"
	"time"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

// Result carries the outcome of a single LLM request. On failure Content is
// empty, Success is false and Error holds the message; callers decide how to
// surface the failure in their responses.
type Result struct {
	Content  string
	Provider string
	Model    string
	Success  bool
	Error    string
}

// RequestManager wraps a provider with logging and debug capture.
type RequestManager struct {
	provider interfaces.LLMProvider
	logger   *common.Logger
	debug    *DebugCollector
}

// NewRequestManager creates a manager for the given provider. The debug
// collector may be nil when debug capture is disabled.
func NewRequestManager(provider interfaces.LLMProvider, logger *common.Logger, debug *DebugCollector) *RequestManager {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &RequestManager{
		provider: provider,
		logger:   logger,
		debug:    debug,
	}
}

// MakeRequest sends the messages to the provider and returns a Result that
// never fails: provider errors are folded into the result so the caller can
// still return a structured response.
func (m *RequestManager) MakeRequest(ctx context.Context, messages []models.ChatMessage, maxTokens int, temperature float32) Result {
	start := time.Now()

	content, err := m.provider.ChatCompletion(ctx, messages, maxTokens, temperature)
	elapsed := time.Since(start)

	result := Result{
		Provider: m.provider.ProviderName(),
		Model:    m.provider.ModelName(),
	}

	if err != nil {
		result.Error = err.Error()
		m.logger.Warn().
			Err(err).
			Str("provider", result.Provider).
			Str("model", result.Model).
			Dur("elapsed", elapsed).
			Msg("LLM request failed")
	} else {
		result.Content = content
		result.Success = true
		m.logger.Debug().
			Str("provider", result.Provider).
			Str("model", result.Model).
			Dur("elapsed", elapsed).
			Int("response_chars", len(content)).
			Msg("LLM request completed")
	}

	if m.debug != nil {
		m.debug.RecordRequest(messages, maxTokens, temperature, result, elapsed)
	}

	return result
}

// Provider returns the underlying provider.
func (m *RequestManager) Provider() interfaces.LLMProvider {
	return m.provider
}
