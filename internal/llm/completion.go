package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"hcp-crm/internal/config"
)

// Completer talks to an OpenAI-compatible chat completions endpoint with the
// fixed decoding parameters from config. It satisfies agent.CompletionService.
type Completer struct {
	client *Client
	cfg    config.GroqConfig
}

// NewCompleter wires a queue client to the configured endpoint
func NewCompleter(client *Client, cfg config.GroqConfig) *Completer {
	return &Completer{client: client, cfg: cfg}
}

// Complete sends the message payload and returns the first choice's content.
// Temperature and max_tokens are fixed configuration, not per-call inputs.
func (c *Completer) Complete(ctx context.Context, messages []map[string]string) (string, error) {
	payload := map[string]interface{}{
		"model":       c.cfg.Model,
		"messages":    messages,
		"temperature": c.cfg.Temperature,
		"max_tokens":  c.cfg.MaxTokens,
		"stream":      false,
	}

	headers := map[string]string{}
	if c.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.cfg.APIKey
	}

	body, err := c.client.Call(ctx, c.cfg.URL, headers, payload)
	if err != nil {
		return "", err
	}

	var respStruct struct {
		Choices []struct {
			Message struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &respStruct); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if len(respStruct.Choices) == 0 {
		return "", fmt.Errorf("completion response had no choices")
	}

	return respStruct.Choices[0].Message.Content, nil
}
