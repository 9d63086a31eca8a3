// Package llm provides the LLM client abstraction used by the layout
// proposer. The default provider speaks the OpenAI-compatible
// chat-completions protocol against a configurable endpoint (typically a
// locally hosted instruct model); Gemini is available as an alternative.
package llm

import (
	"context"
	"fmt"

	"github.com/anandv/hrms-dashboard/internal/config"
)

// Request is a single completion request. System pins the output contract,
// User carries the data facts.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// Client is an abstraction over LLM providers.
type Client interface {
	// Complete sends the request and returns the raw text of the first choice.
	Complete(ctx context.Context, req Request) (string, error)
	// Model returns the configured model name, for logging.
	Model() string
	// Close releases any resources held by the client.
	Close() error
}

// NewClient creates an LLM client based on configuration.
func NewClient(ctx context.Context, cfg *config.Config) (Client, error) {
	switch cfg.LLMProvider {
	case "gemini":
		return NewGeminiClient(ctx, cfg.LLMModel, cfg.APIKey)
	case "", "chat":
		if cfg.LLMEndpoint == "" {
			return nil, fmt.Errorf("chat provider requires llm_endpoint")
		}
		return NewChatClient(cfg.LLMEndpoint, cfg.LLMModel, cfg.APIKey), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
