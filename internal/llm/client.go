package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Client wraps the queue for easy integration
type Client struct {
	manager *Manager
	timeout time.Duration
}

// NewClient creates a new queue client
func NewClient(manager *Manager, timeout time.Duration) *Client {
	return &Client{
		manager: manager,
		timeout: timeout,
	}
}

// Call submits a request and waits for its response or the context
func (c *Client) Call(ctx context.Context, url string, headers map[string]string, payload map[string]interface{}) ([]byte, error) {
	respCh := make(chan *Response, 1)
	errCh := make(chan error, 1)

	req := &Request{
		ID:         fmt.Sprintf("req_%d", time.Now().UnixNano()),
		Context:    ctx,
		URL:        url,
		Headers:    headers,
		Payload:    payload,
		ResponseCh: respCh,
		ErrorCh:    errCh,
		SubmitTime: time.Now(),
		Timeout:    c.timeout,
	}

	if err := c.manager.Submit(req); err != nil {
		return nil, fmt.Errorf("failed to submit: %w", err)
	}

	select {
	case resp := <-respCh:
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("completion service returned status %d: %s", resp.StatusCode, string(resp.Body))
		}
		return resp.Body, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
