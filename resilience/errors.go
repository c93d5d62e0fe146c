package resilience

import "errors"

// Sentinel errors for resilience guards.
var (
	// ErrTimeout is returned when an upstream call exceeds its budget.
	ErrTimeout = errors.New("resilience: upstream call timed out")

	// ErrRateLimited is returned when the client-side rate limit would
	// require waiting longer than the limiter allows.
	ErrRateLimited = errors.New("resilience: client-side rate limit exceeded")
)
