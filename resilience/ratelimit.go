package resilience

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// LimiterConfig configures the client-side rate limiter.
type LimiterConfig struct {
	// Rate is the number of upstream calls allowed per second.
	// Default: 4
	Rate float64

	// Burst is the number of calls that may proceed without pacing.
	// Default: 8
	Burst int

	// MaxWait is the longest Wait will pause for a token before giving
	// up with ErrRateLimited.
	// Default: 2s
	MaxWait time.Duration
}

// RateLimiter is a token bucket that paces calls to the provider.
//
// The bucket refills continuously at Rate tokens per second up to Burst.
// Wait fails fast when the pause would exceed MaxWait, so a burst of cache
// misses degrades to stale data instead of queueing behind the quota.
type RateLimiter struct {
	config LimiterConfig

	mu       sync.Mutex
	tokens   float64
	lastFill time.Time
}

// NewRateLimiter creates a rate limiter with defaults applied. The bucket
// starts full.
func NewRateLimiter(config LimiterConfig) *RateLimiter {
	if config.Rate <= 0 {
		config.Rate = 4
	}
	if config.Burst <= 0 {
		config.Burst = 8
	}
	if config.MaxWait <= 0 {
		config.MaxWait = 2 * time.Second
	}

	return &RateLimiter{
		config:   config,
		tokens:   float64(config.Burst),
		lastFill: time.Now(),
	}
}

// Allow reports whether a call may proceed right now, consuming a token
// when it does.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.refillLocked()
	if rl.tokens >= 1 {
		rl.tokens--
		return true
	}
	return false
}

// Wait pauses until a token is available, the pause would exceed MaxWait,
// or the context is cancelled.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rl.Allow() {
		return nil
	}

	rl.mu.Lock()
	rl.refillLocked()
	needed := 1 - rl.tokens
	pause := time.Duration(needed / rl.config.Rate * float64(time.Second))
	rl.mu.Unlock()

	// Grace tick covers timer skew and refill truncation.
	pause += time.Millisecond

	if pause > rl.config.MaxWait {
		return fmt.Errorf("%w: next token in %s", ErrRateLimited, pause.Round(time.Millisecond))
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(pause):
		if rl.Allow() {
			return nil
		}
		return ErrRateLimited
	}
}

func (rl *RateLimiter) refillLocked() {
	now := time.Now()
	elapsed := now.Sub(rl.lastFill)
	rl.lastFill = now

	rl.tokens += elapsed.Seconds() * rl.config.Rate
	if rl.tokens > float64(rl.config.Burst) {
		rl.tokens = float64(rl.config.Burst)
	}
}

// Tokens returns the current token count, refilling first.
func (rl *RateLimiter) Tokens() float64 {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.refillLocked()
	return rl.tokens
}
