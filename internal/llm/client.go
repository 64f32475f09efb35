// Package llm wraps the Gemini API behind a small text-completion interface
// so the rest of the application never touches the SDK directly.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrNotConfigured is returned when no API key was supplied. Callers treat
// generation as unavailable and degrade to fallback text.
var ErrNotConfigured = errors.New("llm: no API key configured")

// Completer produces a text completion for a system/user prompt pair.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Client is a Gemini-backed Completer.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. An empty apiKey yields a disabled
// client whose Complete always returns ErrNotConfigured; this keeps local
// development working without credentials.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if apiKey == "" {
		return &Client{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

// Complete sends a single-turn generation request and returns the text of
// the first candidate.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	if c.client == nil {
		return "", ErrNotConfigured
	}

	contents := []*genai.Content{
		genai.NewContentFromText(user, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.5),
		MaxOutputTokens: 512,
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("model returned no text")
	}
	return text, nil
}
