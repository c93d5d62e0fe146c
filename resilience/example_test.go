package resilience_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonwraymond/appdiscovery/resilience"
)

func ExampleNewRetry() {
	retry := resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		NoJitter:     true, // predictable example timing
	})

	ctx := context.Background()
	attempts := 0

	err := retry.Execute(ctx, func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("upstream returned 503")
		}
		return nil
	})

	if err == nil {
		fmt.Printf("succeeded after %d attempts\n", attempts)
	}
	// Output:
	// succeeded after 3 attempts
}

func ExampleNewRetry_withCallback() {
	retry := resilience.NewRetry(resilience.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		NoJitter:     true,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			fmt.Printf("attempt %d failed, retrying\n", attempt)
		},
	})

	ctx := context.Background()
	_ = retry.Execute(ctx, func(ctx context.Context) error {
		return errors.New("upstream unreachable")
	})
	// Output:
	// attempt 1 failed, retrying
	// attempt 2 failed, retrying
}

func ExampleNewTimeout() {
	tmo := resilience.NewTimeout(10 * time.Millisecond)

	err := tmo.Execute(context.Background(), func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second): // a provider that never answers
			return nil
		}
	})

	if errors.Is(err, resilience.ErrTimeout) {
		fmt.Println("provider too slow, falling back")
	}
	// Output:
	// provider too slow, falling back
}

func ExampleNewRateLimiter() {
	limiter := resilience.NewRateLimiter(resilience.LimiterConfig{
		Rate:  0.001, // effectively no refill during the example
		Burst: 2,
	})

	for i := 0; i < 3; i++ {
		fmt.Println(limiter.Allow())
	}
	// Output:
	// true
	// true
	// false
}
