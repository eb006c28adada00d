// Package mistral implements assistant.Provider against an OpenAI-style
// chat-completions endpoint (Together AI hosting a Mistral model).
package mistral

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linnemanlabs/aegis/internal/assistant"
)

// DefaultEndpoint is the Together AI chat-completions URL.
const DefaultEndpoint = "https://api.together.xyz/v1/chat/completions"

const (
	maxTokens   = 512
	temperature = 0.7
)

// Client implements the assistant.Provider interface for Together AI.
type Client struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// New creates a new Together AI client. An empty endpoint selects
// DefaultEndpoint.
func New(apiKey, model, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// Message is a single chat-completions message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the payload sent to the chat-completions endpoint.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

// Response is the payload received from the chat-completions endpoint.
type Response struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Model string `json:"model"`
}

// Exchange sends the transcript and returns the generated reply.
func (c *Client) Exchange(ctx context.Context, req *assistant.ExchangeRequest) (*assistant.ExchangeReply, error) {
	payload := Request{
		Model:       c.model,
		Messages:    toMessages(req),
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat completions error %d: %s", resp.StatusCode, string(respBody))
	}

	var out Response
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("no choices in response")
	}

	return &assistant.ExchangeReply{
		Text:  out.Choices[0].Message.Content,
		Model: out.Model,
	}, nil
}

// toMessages flattens the exchange into chat-completions messages, system
// prompt first, role and content only.
func toMessages(req *assistant.ExchangeRequest) []Message {
	out := make([]Message, 0, len(req.Turns)+1)
	if req.System != "" {
		out = append(out, Message{Role: "system", Content: req.System})
	}
	for _, t := range req.Turns {
		out = append(out, Message{Role: string(t.Role), Content: t.Content})
	}
	return out
}
