package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	aoption "github.com/anthropics/anthropic-sdk-go/option"
)

// messageAPI is the subset of the Anthropic messages service used here
type messageAPI interface {
	New(ctx context.Context, body anthropic.MessageNewParams, opts ...aoption.RequestOption) (*anthropic.Message, error)
}

// AnthropicClient implements Client for Anthropic Claude models
type AnthropicClient struct {
	messages messageAPI
	config   *Config
}

// NewAnthropicClient creates a new Anthropic client
func NewAnthropicClient(config *Config, apiKey string, opts ...aoption.RequestOption) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultAnthropicConfig()
	}

	client := anthropic.NewClient(append([]aoption.RequestOption{aoption.WithAPIKey(apiKey)}, opts...)...)
	return &AnthropicClient{
		messages: &client.Messages,
		config:   config,
	}, nil
}

// Generate sends a request to the model configured for the request tier
func (c *AnthropicClient) Generate(ctx context.Context, req Request) (string, error) {
	modelName := c.config.GetModel(req.Tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", req.Tier)
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(modelName),
		MaxTokens:   int64(c.config.maxTokens()),
		Temperature: anthropic.Float(float64(req.temperature())),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return extractTextFromMessage(msg)
}

// GetModel returns the model name for a tier
func (c *AnthropicClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP transport is shared
func (c *AnthropicClient) Close() error {
	return nil
}

func extractTextFromMessage(msg *anthropic.Message) (string, error) {
	if msg == nil || len(msg.Content) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no text blocks in response")
	}
	return sb.String(), nil
}
