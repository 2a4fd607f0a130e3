package claude

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dan9191/finance-dashboard/internal/config"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"
)

// Client wraps the Anthropic API for single-turn structured completions
type Client struct {
	client  anthropic.Client
	model   string
	enabled bool
	log     *logrus.Logger
}

// NewClient initializes a new reasoning client. The client is disabled when
// no API key is configured; callers fall back to the deterministic engines.
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		client:  anthropic.NewClient(option.WithAPIKey(cfg.AnthropicKey)),
		model:   cfg.AnthropicModel,
		enabled: cfg.AnthropicKey != "",
		log:     log,
	}
}

// Enabled reports whether an API key is configured
func (c *Client) Enabled() bool {
	return c.enabled
}

// Complete sends a single-turn prompt and returns the raw text response
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("reasoning service is not configured")
	}

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	text := sb.String()
	if text == "" {
		return "", fmt.Errorf("empty completion response")
	}

	c.log.Debugf("Completion response: %s", text)
	return text, nil
}

// ExtractJSON returns the first JSON object embedded in model output, or ""
// when none is present. Models occasionally wrap JSON in prose or markdown.
func ExtractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}
