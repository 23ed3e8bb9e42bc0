package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"hcp-crm/internal/tools"
)

// ManagerConfig controls queue behavior
type ManagerConfig struct {
	MaxConcurrent  int
	QueueSize      int
	DefaultTimeout time.Duration
}

// DefaultManagerConfig returns sensible defaults
func DefaultManagerConfig() *ManagerConfig {
	return &ManagerConfig{
		MaxConcurrent:  2,
		QueueSize:      20,
		DefaultTimeout: 60 * time.Second,
	}
}

// Manager coordinates outbound completion-service requests through a bounded
// queue with limited concurrency and a circuit breaker on the upstream.
type Manager struct {
	queue     chan *Request
	semaphore chan struct{}

	circuitBreaker *tools.CircuitBreaker

	mu      sync.Mutex
	metrics Metrics

	stopCh chan struct{}
	wg     sync.WaitGroup

	config *ManagerConfig
}

// NewManager creates a queue manager and starts its dispatcher
func NewManager(config *ManagerConfig, circuitBreaker *tools.CircuitBreaker) *Manager {
	if config == nil {
		config = DefaultManagerConfig()
	}
	m := &Manager{
		queue:          make(chan *Request, config.QueueSize),
		semaphore:      make(chan struct{}, config.MaxConcurrent),
		circuitBreaker: circuitBreaker,
		stopCh:         make(chan struct{}),
		config:         config,
	}

	m.wg.Add(1)
	go m.dispatcher()

	log.Printf("[LLM Queue] Started with %d concurrent slots", config.MaxConcurrent)
	return m
}

// Submit adds a request to the queue (non-blocking with drop behavior)
func (m *Manager) Submit(req *Request) error {
	m.mu.Lock()
	m.metrics.Enqueued++
	m.mu.Unlock()

	select {
	case m.queue <- req:
		return nil
	default:
		m.mu.Lock()
		m.metrics.Dropped++
		m.mu.Unlock()
		log.Printf("[LLM Queue] WARNING: queue full, dropping request %s", req.ID)
		return fmt.Errorf("queue full")
	}
}

func (m *Manager) dispatcher() {
	defer m.wg.Done()

	for {
		var req *Request
		select {
		case <-m.stopCh:
			return
		case req = <-m.queue:
		}

		// Wait for a processing slot, but stay responsive to shutdown
		select {
		case <-m.stopCh:
			req.ErrorCh <- fmt.Errorf("queue shutting down")
			return
		case m.semaphore <- struct{}{}:
		}

		m.wg.Add(1)
		go m.processRequest(req)
	}
}

func (m *Manager) processRequest(req *Request) {
	defer func() {
		<-m.semaphore
		m.wg.Done()

		m.mu.Lock()
		m.metrics.Processed++
		m.mu.Unlock()
	}()

	startTime := time.Now()

	if req.Context.Err() != nil {
		req.ErrorCh <- req.Context.Err()
		return
	}

	timeout := req.Timeout
	if timeout == 0 {
		timeout = m.config.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(req.Context, timeout)
	defer cancel()

	resp, err := m.executeHTTPRequest(ctx, req)
	if err != nil {
		log.Printf("[LLM Queue] Request %s failed after %s: %v", req.ID, time.Since(startTime), err)
		req.ErrorCh <- err
		return
	}

	select {
	case req.ResponseCh <- resp:
		log.Printf("[LLM Queue] Request %s completed in %s", req.ID, time.Since(startTime))
	case <-ctx.Done():
		log.Printf("[LLM Queue] Request %s timeout after %s", req.ID, time.Since(startTime))
		req.ErrorCh <- ctx.Err()
	}
}

func (m *Manager) executeHTTPRequest(ctx context.Context, req *Request) (*Response, error) {
	if m.circuitBreaker != nil && m.circuitBreaker.IsOpen() {
		return nil, tools.ErrCircuitOpen
	}

	jsonData, err := json.Marshal(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", req.URL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	client := &http.Client{}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		if m.circuitBreaker != nil {
			m.circuitBreaker.Call(func() error { return err })
		}
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	if m.circuitBreaker != nil {
		m.circuitBreaker.Call(func() error { return nil })
	}

	defer httpResp.Body.Close()
	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Body:       body,
	}, nil
}

// GetMetrics returns current queue statistics
func (m *Manager) GetMetrics() Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics := m.metrics
	metrics.Depth = len(m.queue)
	return metrics
}

// Stop gracefully shuts down the queue
func (m *Manager) Stop() {
	close(m.stopCh)
	m.wg.Wait()
	log.Printf("[LLM Queue] Stopped")
}
