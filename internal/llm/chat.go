package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/anandv/hrms-dashboard/internal/errkind"
)

// maxErrorBody bounds how much of an error response is kept for diagnostics.
const maxErrorBody = 2048

// ChatClient calls an OpenAI-compatible chat-completions endpoint and reads
// choices[0].message.content as text. The endpoint is treated as untrusted:
// callers must validate whatever comes back.
type ChatClient struct {
	http     *http.Client
	endpoint string
	model    string
	apiKey   string
}

// NewChatClient creates a chat-completions client. Timeouts are owned by the
// caller's context, so the underlying http.Client has none of its own.
func NewChatClient(endpoint, model, apiKey string) *ChatClient {
	return &ChatClient{
		http:     &http.Client{},
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the request and returns the first choice's content.
func (c *ChatClient) Complete(ctx context.Context, req Request) (string, error) {
	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.User},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", errkind.Parse("llm", "failed to encode request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", errkind.Transport("llm", "failed to build request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", errkind.Timeout("llm", "completion exceeded budget", err)
		}
		return "", errkind.Transport("llm", "completion request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", errkind.Backend("llm",
			fmt.Sprintf("unexpected status %s: %s", resp.Status, string(raw)), nil)
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errkind.Parse("llm", "response body is not JSON", err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", errkind.Parse("llm", "response has no content", nil)
	}
	return out.Choices[0].Message.Content, nil
}

// Model returns the configured model name.
func (c *ChatClient) Model() string { return c.model }

// Close is a no-op for the HTTP client.
func (c *ChatClient) Close() error { return nil }
