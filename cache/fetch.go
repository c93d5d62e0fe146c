package cache

import (
	"context"
	"fmt"
)

// Fetch is a typed front for Manager.GetOrFetch. It caches whatever the
// fetcher returns and asserts the cached value back to T on later hits,
// so callers skip the interface plumbing.
func Fetch[T any](ctx context.Context, m *Manager, key string, fetcher func(ctx context.Context) (T, error), opts Options) (T, error) {
	var zero T
	if fetcher == nil {
		return zero, ErrNilFetcher
	}

	value, err := m.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetcher(ctx)
	}, opts)
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		// A different caller cached another type under the same key.
		return zero, fmt.Errorf("%w: %T under key %q", ErrTypeMismatch, value, key)
	}
	return typed, nil
}
