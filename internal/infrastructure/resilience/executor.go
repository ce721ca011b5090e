// Package resilience wraps outbound calls (remote translation, queue publish)
// in bounded retries and a per-operation circuit breaker.
package resilience

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
)

type ErrorClassification struct {
	Retryable     bool
	RecordFailure bool
}

type ErrorClassifier func(err error) ErrorClassification

// Hooks lets callers observe retries and breaker transitions, e.g. for metrics.
type Hooks struct {
	OnRetry       func(operation string, attempt int, err error)
	OnStateChange func(operation, from, to string)
}

type Executor struct {
	cfg    Config
	logger *slog.Logger
	hooks  Hooks

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker[any]
}

func NewExecutor(cfg Config) *Executor {
	return NewExecutorWithHooks(cfg, nil, Hooks{})
}

// NewExecutorWithHooks uses slog.Default when logger is nil.
func NewExecutorWithHooks(cfg Config, logger *slog.Logger, hooks Hooks) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		cfg:      cfg.normalize(),
		logger:   logger,
		hooks:    hooks,
		breakers: make(map[string]*gobreaker.CircuitBreaker[any]),
	}
}

// Execute runs fn under the breaker for operation and retries failures the
// classifier marks retryable. A nil classifier never retries.
func (e *Executor) Execute(ctx context.Context, operation string, fn func(context.Context) error, classifier ErrorClassifier) error {
	if fn == nil {
		return fmt.Errorf("resilience: operation callback is nil")
	}
	op := cmp.Or(strings.TrimSpace(operation), "unknown")
	classify := classifier
	if classify == nil {
		classify = nonRetryable
	}

	run := func() error { return e.retry(ctx, op, fn, classify) }
	if !e.cfg.BreakerEnabled {
		return run()
	}
	_, err := e.breakerFor(op, classify).Execute(func() (any, error) {
		return nil, run()
	})
	return err
}

// State reports the breaker state for operation; "closed" when it has not run yet
// or breakers are disabled.
func (e *Executor) State(operation string) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if breaker, ok := e.breakers[operation]; ok {
		return breaker.State().String()
	}
	return gobreaker.StateClosed.String()
}

func (e *Executor) retry(ctx context.Context, operation string, fn func(context.Context) error, classify ErrorClassifier) error {
	var err error
	for attempt := 1; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = fn(ctx); err == nil {
			return nil
		}
		if attempt >= e.cfg.RetryMaxAttempts || !classify(err).Retryable {
			return err
		}

		wait := e.backoff(attempt)
		e.logger.Warn("retry_attempt",
			"operation", operation,
			"attempt", attempt,
			"max_attempts", e.cfg.RetryMaxAttempts,
			"backoff_ms", wait.Milliseconds(),
			"error", err,
		)
		if e.hooks.OnRetry != nil {
			e.hooks.OnRetry(operation, attempt, err)
		}
		if !sleep(ctx, wait) {
			return err
		}
	}
}

// backoff returns the pause after the given failed attempt (1-based).
func (e *Executor) backoff(attempt int) time.Duration {
	wait := float64(e.cfg.RetryInitialBackoff) * math.Pow(e.cfg.RetryMultiplier, float64(attempt-1))
	if wait >= float64(e.cfg.RetryMaxBackoff) {
		return e.cfg.RetryMaxBackoff
	}
	return time.Duration(wait)
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (e *Executor) breakerFor(operation string, classify ErrorClassifier) *gobreaker.CircuitBreaker[any] {
	e.mu.Lock()
	defer e.mu.Unlock()

	if breaker, ok := e.breakers[operation]; ok {
		return breaker
	}
	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:         operation,
		MaxRequests:  e.cfg.BreakerHalfOpenMaxCalls,
		Timeout:      e.cfg.BreakerOpenTimeout,
		ReadyToTrip:  e.tripWhenFailing,
		IsSuccessful: func(err error) bool { return err == nil || !classify(err).RecordFailure },
		OnStateChange: func(name string, from, to gobreaker.State) {
			e.logger.Warn("circuit_breaker_state_change", "operation", name, "from", from.String(), "to", to.String())
			if e.hooks.OnStateChange != nil {
				e.hooks.OnStateChange(name, from.String(), to.String())
			}
		},
	})
	e.breakers[operation] = breaker
	return breaker
}

func (e *Executor) tripWhenFailing(counts gobreaker.Counts) bool {
	if counts.Requests < e.cfg.BreakerMinRequests {
		return false
	}
	return float64(counts.TotalFailures)/float64(counts.Requests) >= e.cfg.BreakerFailureRatio
}

// IsCircuitOpen reports whether err came from a breaker refusing the call.
func IsCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

func nonRetryable(error) ErrorClassification {
	return ErrorClassification{RecordFailure: true}
}
