// Package gemini wraps the Google GenAI SDK behind the small generation
// interface the chat session layer consumes.
package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/lumenchat/lumen/pkg/metrics"
)

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = time.Minute
	}

	return &Client{client: client, model: cfg.Model, timeout: timeout}, nil
}

// Generate produces a reply for the given prompt. The call is bounded by
// the configured timeout; expiry surfaces as a plain error, same as any
// other generation failure. No retries happen at this layer.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	metrics.GenerationDuration.WithLabelValues(c.model).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(c.model, "error").Inc()
		return "", fmt.Errorf("generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		metrics.GenerationTotal.WithLabelValues(c.model, "empty").Inc()
		return "", fmt.Errorf("generate content: empty response")
	}

	metrics.GenerationTotal.WithLabelValues(c.model, "ok").Inc()
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
