package llm

import (
	"context"
	"time"
)

// Request encapsulates one completion-service call
type Request struct {
	ID      string
	Context context.Context

	URL     string
	Headers map[string]string
	Payload map[string]interface{}

	// Response handling
	ResponseCh chan<- *Response
	ErrorCh    chan<- error

	SubmitTime time.Time
	Timeout    time.Duration
}

// Response encapsulates completion-service output
type Response struct {
	StatusCode int
	Body       []byte
}

// Metrics tracks queue performance
type Metrics struct {
	Enqueued  int64
	Processed int64
	Dropped   int64
	Depth     int
}
