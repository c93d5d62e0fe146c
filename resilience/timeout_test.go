package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewTimeout_Defaults(t *testing.T) {
	tmo := NewTimeout(0)

	if tmo.Limit() != 10*time.Second {
		t.Errorf("Limit() = %v, want 10s", tmo.Limit())
	}
}

func TestTimeout_Success(t *testing.T) {
	tmo := NewTimeout(time.Second)

	err := tmo.Execute(context.Background(), func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Errorf("Execute() error = %v", err)
	}
}

func TestTimeout_DeadlineExceeded(t *testing.T) {
	tmo := NewTimeout(10 * time.Millisecond)

	err := tmo.Execute(context.Background(), func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	})

	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Execute() error = %v, want ErrTimeout", err)
	}
}

func TestTimeout_PropagatesOperationError(t *testing.T) {
	tmo := NewTimeout(time.Second)
	opErr := errors.New("provider rejected request")

	err := tmo.Execute(context.Background(), func(ctx context.Context) error {
		return opErr
	})

	if !errors.Is(err, opErr) {
		t.Errorf("Execute() error = %v, want %v", err, opErr)
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("operation error should not be classified as a timeout")
	}
}

func TestTimeout_ParentCancellation(t *testing.T) {
	tmo := NewTimeout(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tmo.Execute(ctx, func(ctx context.Context) error {
		return ctx.Err()
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Execute() error = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrTimeout) {
		t.Error("cancellation should not be classified as a timeout")
	}
}

func TestExecuteWithTimeout(t *testing.T) {
	err := ExecuteWithTimeout(context.Background(), 10*time.Millisecond, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	})

	if !errors.Is(err, ErrTimeout) {
		t.Errorf("ExecuteWithTimeout() error = %v, want ErrTimeout", err)
	}
}
