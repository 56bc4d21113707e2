package llm

import (
	"context"
	"fmt"
)

// Request is a single completion request
type Request struct {
	// System is an optional system instruction
	System string
	// Prompt is the user message
	Prompt string
	// Tier selects the model
	Tier ModelTier
	// Temperature controls sampling; zero uses TemperatureParsing
	Temperature float32
	// JSON asks the provider for a JSON response when it supports that
	JSON bool
}

// Client is an abstraction over LLM providers
type Client interface {
	// Generate returns the raw model text for a request. The text may contain code fences.
	Generate(ctx context.Context, req Request) (string, error)
	// GetModel returns the provider model used for a tier
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderAnthropic:
		return NewAnthropicClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

func (r Request) temperature() float32 {
	if r.Temperature <= 0 {
		return TemperatureParsing
	}
	return r.Temperature
}
