// Package claude implements assistant.Provider using the Anthropic SDK, for
// deployments pointing the console at Claude instead of a chat-completions
// backend.
package claude

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/linnemanlabs/aegis/internal/assistant"
)

const maxTokens = 1024

// Client implements the assistant.Provider interface for the Claude API.
type Client struct {
	client anthropic.Client
	model  anthropic.Model
}

// New creates a new Claude client with the given API key and model name.
func New(apiKey, model string) *Client {
	return &Client{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  anthropic.Model(model),
	}
}

// Exchange sends the transcript and returns the generated reply.
func (c *Client) Exchange(ctx context.Context, req *assistant.ExchangeRequest) (*assistant.ExchangeReply, error) {
	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages:  toSDKMessages(req.Turns),
	}
	if req.System != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.System}}
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("claude api: %w", err)
	}

	text := textContent(msg)
	if text == "" {
		return nil, fmt.Errorf("no text content in response")
	}

	return &assistant.ExchangeReply{
		Text:  text,
		Model: string(msg.Model),
	}, nil
}

// toSDKMessages converts transcript turns to SDK message params.
func toSDKMessages(turns []assistant.Turn) []anthropic.MessageParam {
	out := make([]anthropic.MessageParam, 0, len(turns))
	for _, t := range turns {
		block := anthropic.NewTextBlock(t.Content)
		if t.Role == assistant.RoleAssistant {
			out = append(out, anthropic.NewAssistantMessage(block))
		} else {
			out = append(out, anthropic.NewUserMessage(block))
		}
	}
	return out
}

// textContent extracts the first text block from a response message.
func textContent(msg *anthropic.Message) string {
	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text
		}
	}
	return ""
}
