package tools

import (
	"errors"
	"log"
	"sync"
	"time"
)

// Circuit breaker errors
var (
	ErrCircuitOpen     = errors.New("circuit breaker open")
	ErrTooManyRequests = errors.New("too many requests in half-open state")
)

// CircuitState represents the state of the circuit breaker
type CircuitState string

const (
	StateClosed   CircuitState = "closed"    // Normal operation
	StateOpen     CircuitState = "open"      // Failing, reject requests
	StateHalfOpen CircuitState = "half-open" // Testing if service recovered
)

// CircuitBreaker stops requests to the completion service once it keeps
// failing, so turns degrade immediately instead of piling up on timeouts.
type CircuitBreaker struct {
	mu                   sync.RWMutex
	state                CircuitState
	failureCount         int
	consecutiveSuccesses int
	halfOpenAttempts     int
	lastFailureTime      time.Time

	failureThreshold int           // Failures before opening
	successThreshold int           // Successes to close from half-open
	timeout          time.Duration // How long to stay open
	halfOpenMax      int           // Max test requests in half-open
}

// NewCircuitBreaker creates a circuit breaker with the given configuration
func NewCircuitBreaker(failureThreshold int, timeout time.Duration) *CircuitBreaker {
	if failureThreshold < 1 {
		failureThreshold = 3
	}
	if timeout < time.Second {
		timeout = time.Minute
	}
	return &CircuitBreaker{
		state:            StateClosed,
		failureThreshold: failureThreshold,
		successThreshold: 3,
		timeout:          timeout,
		halfOpenMax:      3,
	}
}

// Call executes fn through the breaker, recording the outcome
func (cb *CircuitBreaker) Call(fn func() error) error {
	if err := cb.beforeRequest(); err != nil {
		return err
	}
	err := fn()
	cb.afterRequest(err)
	return err
}

func (cb *CircuitBreaker) beforeRequest() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateOpen:
		if time.Since(cb.lastFailureTime) > cb.timeout {
			cb.state = StateHalfOpen
			cb.consecutiveSuccesses = 0
			cb.halfOpenAttempts = 0
			log.Printf("[CircuitBreaker] open -> half-open (timeout elapsed, testing service)")
			return nil
		}
		return ErrCircuitOpen
	case StateHalfOpen:
		if cb.halfOpenAttempts >= cb.halfOpenMax {
			return ErrTooManyRequests
		}
		cb.halfOpenAttempts++
		return nil
	default:
		return nil
	}
}

func (cb *CircuitBreaker) afterRequest(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err != nil {
		cb.failureCount++
		cb.consecutiveSuccesses = 0
		cb.lastFailureTime = time.Now()

		switch cb.state {
		case StateClosed:
			if cb.failureCount >= cb.failureThreshold {
				cb.state = StateOpen
				log.Printf("[CircuitBreaker] closed -> open (%d consecutive failures)", cb.failureCount)
			}
		case StateHalfOpen:
			cb.state = StateOpen
			log.Printf("[CircuitBreaker] half-open -> open (test request failed)")
		}
		return
	}

	cb.consecutiveSuccesses++
	switch cb.state {
	case StateClosed:
		cb.failureCount = 0
	case StateHalfOpen:
		if cb.consecutiveSuccesses >= cb.successThreshold {
			cb.state = StateClosed
			cb.failureCount = 0
			log.Printf("[CircuitBreaker] half-open -> closed (service recovered)")
		}
	}
}

// State returns the current state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// IsOpen returns true if the circuit is open
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}
