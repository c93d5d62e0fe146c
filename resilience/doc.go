// Package resilience guards calls to the discovery provider.
//
// The provider is slow and rate-limited, so every upstream call runs under a
// small set of composable guards. Each guard wraps an operation of the form
// func(context.Context) error and is safe for concurrent use.
//
// # Patterns
//
//   - Timeout: bounds a single call with a per-operation deadline. Listing
//     connected apps, fetching actions, and probing health each carry their
//     own budget.
//
//   - Retry: re-runs transient failures with exponential backoff and jitter.
//     Which errors count as transient is decided by the caller through
//     RetryIf; typically HTTP 429 and 5xx responses.
//
//   - RateLimiter: a token bucket that paces outbound calls so a burst of
//     cache misses does not consume the provider's quota.
//
// # Usage
//
// The guards nest naturally around an HTTP call:
//
//	limiter := resilience.NewRateLimiter(resilience.LimiterConfig{
//	    Rate:  4, // calls per second
//	    Burst: 8,
//	})
//	retry := resilience.NewRetry(resilience.RetryConfig{
//	    MaxAttempts:  3,
//	    InitialDelay: 250 * time.Millisecond,
//	    RetryIf:      isTransient,
//	})
//	timeout := resilience.NewTimeout(10 * time.Second)
//
//	err := retry.Execute(ctx, func(ctx context.Context) error {
//	    if err := limiter.Wait(ctx); err != nil {
//	        return err
//	    }
//	    return timeout.Execute(ctx, callProvider)
//	})
package resilience
