package infra

// Guards the SMTP mailer. A run of consecutive delivery failures opens the
// breaker and alert jobs fast-fail until the cooldown elapses; the first call
// after the cooldown is the probe that decides whether mail flows again.

import (
	"errors"
	"sync"
	"time"
)

// ErrBreakerOpen is returned while the breaker is open and cooling down.
var ErrBreakerOpen = errors.New("smtp circuit breaker open")

type CircuitBreaker struct {
	mu          sync.Mutex
	open        bool
	failures    int
	openedAt    time.Time
	maxFailures int
	cooldown    time.Duration
}

func NewCircuitBreaker(maxFailures int, cooldown time.Duration) *CircuitBreaker {
	if maxFailures <= 0 {
		maxFailures = 5
	}
	if cooldown <= 0 {
		cooldown = time.Minute
	}
	return &CircuitBreaker{maxFailures: maxFailures, cooldown: cooldown}
}

// Open reports whether calls are currently being rejected.
func (b *CircuitBreaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open && time.Since(b.openedAt) < b.cooldown
}

// Do runs fn unless the breaker is open. While open, calls inside the
// cooldown return ErrBreakerOpen without invoking fn; once the cooldown has
// elapsed the next call goes through as a probe. A successful call resets the
// breaker, a failed probe restarts the cooldown.
func (b *CircuitBreaker) Do(fn func() error) error {
	b.mu.Lock()
	if b.open && time.Since(b.openedAt) < b.cooldown {
		b.mu.Unlock()
		return ErrBreakerOpen
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.failures++
		if b.open || b.failures >= b.maxFailures {
			b.open = true
			b.openedAt = time.Now()
		}
		return err
	}
	b.open = false
	b.failures = 0
	return nil
}
