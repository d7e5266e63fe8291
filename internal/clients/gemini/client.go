// Package gemini provides an LLM provider backed by Google's Gemini API
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

const DefaultModel = "gemini-2.0-flash"

// Client implements the LLMProvider interface
type Client struct {
	client *genai.Client
	model  string
	logger *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithModel sets the model to use
func WithModel(model string) ClientOption {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new Gemini provider
func NewClient(ctx context.Context, apiKey string, opts ...ClientOption) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c := &Client{
		client: client,
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// ChatCompletion sends the messages and returns the generated text. System
// messages become the request's system instruction; the rest map to the
// user/model turn roles Gemini expects.
func (c *Client) ChatCompletion(ctx context.Context, messages []models.ChatMessage, maxTokens int, temperature float32) (string, error) {
	c.logger.Debug().Str("model", c.model).Int("messages", len(messages)).Msg("Gemini chat completion")

	temp := temperature
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
		Temperature:     &temp,
	}

	var contents []*genai.Content
	for _, m := range messages {
		switch m.Role {
		case models.RoleSystem:
			config.SystemInstruction = &genai.Content{
				Parts: []*genai.Part{{Text: m.Content}},
			}
		case models.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: m.Content}},
			})
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	text := extractTextFromResponse(resp)
	if text == "" {
		return "", fmt.Errorf("Gemini API error: empty response")
	}

	return text, nil
}

// extractTextFromResponse collects the text parts from the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}

	return sb.String()
}

// ProviderName returns the provider label.
func (c *Client) ProviderName() string {
	return "Gemini"
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	return c.model
}

// Ensure Client implements LLMProvider
var _ interfaces.LLMProvider = (*Client)(nil)
