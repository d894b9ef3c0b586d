package client

import (
	"context"
	"math"
	"time"
)

// RetryConfig configures retry behavior for idempotent gateway reads.
// Mutations are never retried; they are sent once and their failures
// surfaced to the caller.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterEnabled bool
}

// DefaultRetryConfig provides sensible defaults.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
	}
}

// retry executes fn up to config.MaxAttempts times with exponential
// backoff between attempts, honoring context cancellation.
func retry(ctx context.Context, config *RetryConfig, fn func() error) error {
	if config == nil || config.MaxAttempts <= 1 {
		return fn()
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}

		if attempt == config.MaxAttempts {
			break
		}

		if attempt > 1 {
			delay = time.Duration(float64(delay) * config.BackoffFactor)
			if delay > config.MaxDelay {
				delay = config.MaxDelay
			}
		}

		// Jitter desynchronizes retries from concurrent clients.
		if config.JitterEnabled {
			delay += time.Duration(float64(delay) * 0.1 * math.Sin(float64(attempt)))
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	return lastErr
}
