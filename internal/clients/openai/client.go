// Package openai provides an LLM provider backed by the OpenAI API
package openai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/bobmcallan/advisor/internal/common"
	"github.com/bobmcallan/advisor/internal/interfaces"
	"github.com/bobmcallan/advisor/internal/models"
)

const DefaultModel = "gpt-4o"

// Client implements the LLMProvider interface
type Client struct {
	client *openai.Client
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

// NewClient creates a new OpenAI provider
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		client: openai.NewClient(apiKey),
		model:  DefaultModel,
		logger: common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// ChatCompletion sends the messages and returns the generated text.
func (c *Client) ChatCompletion(ctx context.Context, messages []models.ChatMessage, maxTokens int, temperature float32) (string, error) {
	c.logger.Debug().Str("model", c.model).Int("messages", len(messages)).Msg("OpenAI chat completion")

	reqMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		reqMessages[i] = openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    reqMessages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI API error: empty response")
	}

	return resp.Choices[0].Message.Content, nil
}

// ProviderName returns the provider label.
func (c *Client) ProviderName() string {
	return "OpenAI"
}

// ModelName returns the configured model identifier.
func (c *Client) ModelName() string {
	return c.model
}

// Ensure Client implements LLMProvider
var _ interfaces.LLMProvider = (*Client)(nil)
