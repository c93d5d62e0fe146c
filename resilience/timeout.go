package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Timeout bounds a single upstream call with a deadline.
//
// The operation must honor context cancellation; requests built with
// http.NewRequestWithContext do. When the deadline expires the returned
// error wraps ErrTimeout so callers can distinguish a slow provider from a
// failing one.
type Timeout struct {
	limit time.Duration
}

// NewTimeout creates a timeout guard. A non-positive limit defaults to 10s.
func NewTimeout(limit time.Duration) *Timeout {
	if limit <= 0 {
		limit = 10 * time.Second
	}
	return &Timeout{limit: limit}
}

// Execute runs the operation under the deadline.
func (t *Timeout) Execute(ctx context.Context, op func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, t.limit)
	defer cancel()

	err := op(ctx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s", ErrTimeout, t.limit)
	}
	return err
}

// Limit returns the configured deadline.
func (t *Timeout) Limit() time.Duration {
	return t.limit
}

// ExecuteWithTimeout runs a single operation under an ad hoc deadline.
func ExecuteWithTimeout(ctx context.Context, limit time.Duration, op func(context.Context) error) error {
	return NewTimeout(limit).Execute(ctx, op)
}
