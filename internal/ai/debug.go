package ai

import (
	"sync"
	"time"

	"github.com/bobmcallan/advisor/internal/models"
)

// DebugEntry records one LLM exchange for diagnostic output.
type DebugEntry struct {
	Timestamp   time.Time            `json:"timestamp"`
	Provider    string               `json:"provider"`
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature float32              `json:"temperature"`
	Response    string               `json:"response,omitempty"`
	Success     bool                 `json:"success"`
	Error       string               `json:"error,omitempty"`
	DurationMS  int64                `json:"duration_ms"`
}

// DebugCollector accumulates LLM exchanges made while serving a single
// request. When debug mode is enabled the collected entries are attached to
// the response under the ai_debug field.
type DebugCollector struct {
	mu      sync.Mutex
	entries []DebugEntry
}

// NewDebugCollector creates an empty collector.
func NewDebugCollector() *DebugCollector {
	return &DebugCollector{}
}

// RecordRequest appends an exchange to the collector.
func (d *DebugCollector) RecordRequest(messages []models.ChatMessage, maxTokens int, temperature float32, result Result, elapsed time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = append(d.entries, DebugEntry{
		Timestamp:   time.Now().UTC(),
		Provider:    result.Provider,
		Model:       result.Model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Response:    result.Content,
		Success:     result.Success,
		Error:       result.Error,
		DurationMS:  elapsed.Milliseconds(),
	})
}

// Entries returns a copy of the collected exchanges.
func (d *DebugCollector) Entries() []DebugEntry {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]DebugEntry, len(d.entries))
	copy(out, d.entries)
	return out
}
