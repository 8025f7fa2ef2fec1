package resilience

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitOpenError reports an open circuit with the time left until a probe
// is allowed again.
type CircuitOpenError struct {
	Name       string
	RetryAfter time.Duration
}

func (e *CircuitOpenError) Error() string {
	retryAfter := e.RetryAfter
	if retryAfter < 0 {
		retryAfter = 0
	}
	if e.Name == "" {
		return fmt.Sprintf("%v: retry in %s", ErrCircuitOpen, retryAfter)
	}
	return fmt.Sprintf("%v for %s: retry in %s", ErrCircuitOpen, e.Name, retryAfter)
}

func (e *CircuitOpenError) Is(target error) bool {
	return target == ErrCircuitOpen
}

type CircuitBreakerState string

const (
	CircuitClosed   CircuitBreakerState = "closed"
	CircuitOpen     CircuitBreakerState = "open"
	CircuitHalfOpen CircuitBreakerState = "half_open"
)

type CircuitBreakerConfig struct {
	Name             string
	FailureThreshold int
	OpenTimeout      time.Duration
	// IsFailure decides which errors count against the breaker. Nil counts
	// every error except context cancellation.
	IsFailure func(error) bool
}

// CircuitBreaker guards one remote endpoint. In half-open state a single
// probe is let through; its outcome closes or reopens the circuit.
type CircuitBreaker struct {
	mu sync.Mutex

	cfg CircuitBreakerConfig

	state     CircuitBreakerState
	failures  int
	openUntil time.Time
	probing   bool
	now       func() time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 10 * time.Second
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(err error) bool { return !errors.Is(err, context.Canceled) }
	}

	return &CircuitBreaker{
		cfg:   cfg,
		state: CircuitClosed,
		now:   time.Now,
	}
}

func (cb *CircuitBreaker) State() CircuitBreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.refreshLocked()
	return cb.state
}

// Execute runs fn unless the circuit is open.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if err := cb.acquire(); err != nil {
		return err
	}

	err := fn(ctx)
	cb.release(err != nil && cb.cfg.IsFailure(err))
	return err
}

func (cb *CircuitBreaker) acquire() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.refreshLocked()

	switch cb.state {
	case CircuitOpen:
		return cb.openErrLocked()
	case CircuitHalfOpen:
		if cb.probing {
			return cb.openErrLocked()
		}
		cb.probing = true
	}
	return nil
}

func (cb *CircuitBreaker) release(failed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitHalfOpen {
		cb.probing = false
		if failed {
			cb.tripLocked()
		} else {
			cb.state = CircuitClosed
			cb.failures = 0
		}
		return
	}

	if !failed {
		cb.failures = 0
		return
	}
	cb.failures++
	if cb.failures >= cb.cfg.FailureThreshold {
		cb.tripLocked()
	}
}

func (cb *CircuitBreaker) refreshLocked() {
	if cb.state == CircuitOpen && !cb.now().Before(cb.openUntil) {
		cb.state = CircuitHalfOpen
		cb.probing = false
	}
}

func (cb *CircuitBreaker) tripLocked() {
	cb.state = CircuitOpen
	cb.openUntil = cb.now().Add(cb.cfg.OpenTimeout)
	cb.failures = 0
}

func (cb *CircuitBreaker) openErrLocked() error {
	return &CircuitOpenError{
		Name:       cb.cfg.Name,
		RetryAfter: cb.openUntil.Sub(cb.now()),
	}
}
