package realtime

import (
	"math/rand"
	"time"
)

// ReconnectPolicy makes the retry behavior of the channel an explicit,
// testable parameter instead of a transport library default.
type ReconnectPolicy struct {
	// Delay is the wait before the first reconnect attempt.
	Delay time.Duration
	// MaxDelay caps backoff growth; 0 means no cap.
	MaxDelay time.Duration
	// BackoffFactor multiplies the delay after each failed attempt.
	// 1.0 keeps the delay fixed.
	BackoffFactor float64
	// MaxAttempts bounds consecutive failed attempts; 0 retries forever.
	MaxAttempts int
	// Jitter adds up to +/-10% randomness to each delay to avoid
	// synchronized reconnects across clients.
	Jitter bool
}

// DefaultReconnectPolicy mirrors the production channel settings: a
// fixed 5 second delay, retrying until torn down.
func DefaultReconnectPolicy() ReconnectPolicy {
	return ReconnectPolicy{
		Delay:         5 * time.Second,
		BackoffFactor: 1.0,
	}
}

// next returns the delay to use after delay, applying the backoff
// factor and cap.
func (p ReconnectPolicy) next(delay time.Duration) time.Duration {
	if p.BackoffFactor > 1.0 {
		delay = time.Duration(float64(delay) * p.BackoffFactor)
		if p.MaxDelay > 0 && delay > p.MaxDelay {
			delay = p.MaxDelay
		}
	}
	return delay
}

// jittered applies the policy's jitter to a delay.
func (p ReconnectPolicy) jittered(delay time.Duration) time.Duration {
	if !p.Jitter || delay <= 0 {
		return delay
	}
	spread := int64(delay) / 5
	if spread <= 0 {
		return delay
	}
	return delay - delay/10 + time.Duration(rand.Int63n(spread))
}
