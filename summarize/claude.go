// Package summarize wraps the Anthropic API: it turns a scraped article
// into the structured markdown body the document engine renders.
package summarize

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

type Client struct {
	client *anthropic.Client
}

func NewClient(apiKey string) *Client {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &Client{
		client: client,
	}
}

func (c *Client) SendMessage(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	message, err := c.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:     anthropic.F(anthropic.ModelClaude3_5SonnetLatest),
			MaxTokens: anthropic.F(int64(4096)),
			System: anthropic.F([]anthropic.TextBlockParam{
				anthropic.NewTextBlock(systemPrompt),
			}),
			Messages: anthropic.F([]anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(userPrompt),
				),
			}),
		},
	)

	if err != nil {
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from claude")
	}

	return message.Content[0].Text, nil
}

// Summarize produces a markdown summary for one article body.
func (c *Client) Summarize(ctx context.Context, source, title, body string) (string, error) {
	userPrompt := fmt.Sprintf("Source: %s\nTitle: %s\n\n%s", source, title, body)
	summary, err := c.SendMessage(ctx, summaryPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("summarizing %q: %w", title, err)
	}
	return summary, nil
}
