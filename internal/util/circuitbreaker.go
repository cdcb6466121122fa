package util

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// CircuitState represents the state of the circuit breaker
type CircuitState string

const (
	CircuitStateClosed   CircuitState = "CLOSED"
	CircuitStateOpen     CircuitState = "OPEN"
	CircuitStateHalfOpen CircuitState = "HALF_OPEN" // one probe in flight at a time
)

func (s CircuitState) String() string {
	return string(s)
}

// CircuitBreaker stops calls to a failing upstream for a cool-down period
// after failureThreshold consecutive failures. After the cool-down one
// probe is let through; its outcome closes or reopens the circuit. Other
// callers are refused while the probe is in flight.
type CircuitBreaker struct {
	name             string
	failureThreshold int
	resetTimeout     time.Duration
	logger           *zap.Logger
	now              func() time.Time

	mu            sync.Mutex
	state         CircuitState
	failureCount  int
	nextRetryTime time.Time
	probeInFlight bool
}

func NewCircuitBreaker(name string, failureThreshold int, resetTimeout time.Duration, logger *zap.Logger) *CircuitBreaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if failureThreshold <= 0 {
		failureThreshold = 1
	}
	return &CircuitBreaker{
		name:             name,
		failureThreshold: failureThreshold,
		resetTimeout:     resetTimeout,
		logger:           logger,
		now:              time.Now,
		state:            CircuitStateClosed,
	}
}

// SetClock replaces the time source. Used by tests.
func (cb *CircuitBreaker) SetClock(now func() time.Time) {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.now = now
}

// State returns the current state, moving OPEN to HALF_OPEN once the
// cool-down has passed.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.refreshLocked()
	return cb.state
}

// CanExecute reports whether a request may be sent. In HALF_OPEN the first
// caller takes the probe slot; it must end with RecordSuccess,
// RecordFailure or ReleaseProbe.
func (cb *CircuitBreaker) CanExecute() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.refreshLocked()

	switch cb.state {
	case CircuitStateOpen:
		return false
	case CircuitStateHalfOpen:
		if cb.probeInFlight {
			return false
		}
		cb.probeInFlight = true
	}
	return true
}

// ReleaseProbe frees the probe slot without recording an outcome, for a
// request abandoned by its caller.
func (cb *CircuitBreaker) ReleaseProbe() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.probeInFlight = false
}

// RetryAfter is the remaining cool-down, zero unless the circuit is open.
func (cb *CircuitBreaker) RetryAfter() time.Duration {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	if cb.state != CircuitStateOpen {
		return 0
	}
	return max(cb.nextRetryTime.Sub(cb.now()), 0)
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitStateHalfOpen {
		cb.logger.Info("Circuit breaker: upstream recovered", zap.String("name", cb.name))
		cb.transitionTo(CircuitStateClosed)
	}
	cb.failureCount = 0
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failureCount++
	cb.logger.Warn("Circuit breaker: failure recorded",
		zap.String("name", cb.name),
		zap.Int("count", cb.failureCount),
		zap.Int("threshold", cb.failureThreshold),
	)

	if cb.state == CircuitStateHalfOpen || cb.failureCount >= cb.failureThreshold {
		cb.nextRetryTime = cb.now().Add(cb.resetTimeout)
		cb.transitionTo(CircuitStateOpen)
	}
}

// Reset closes the circuit and clears the failure count.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = CircuitStateClosed
	cb.failureCount = 0
	cb.nextRetryTime = time.Time{}
	cb.probeInFlight = false
}

// refreshLocked must be called with mu held.
func (cb *CircuitBreaker) refreshLocked() {
	if cb.state == CircuitStateOpen && !cb.now().Before(cb.nextRetryTime) {
		cb.transitionTo(CircuitStateHalfOpen)
	}
}

// transitionTo must be called with mu held.
func (cb *CircuitBreaker) transitionTo(newState CircuitState) {
	if cb.state == newState {
		return
	}
	oldState := cb.state
	cb.state = newState
	cb.probeInFlight = false

	fields := []zap.Field{
		zap.String("name", cb.name),
		zap.String("from", oldState.String()),
		zap.String("to", newState.String()),
		zap.Int("failure_count", cb.failureCount),
	}
	if newState == CircuitStateOpen {
		fields = append(fields, zap.Time("next_retry", cb.nextRetryTime))
	}
	cb.logger.Info("Circuit breaker: state transition", fields...)
}
