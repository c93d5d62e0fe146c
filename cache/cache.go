package cache

import (
	"context"
	"strings"
	"time"
)

// Fetcher loads a value from the upstream provider on a cache miss.
// It must honor ctx cancellation; the manager wraps it with tracing,
// metrics, and logging before invoking it.
type Fetcher func(ctx context.Context) (any, error)

// Options tune a single GetOrFetch call. The zero value asks for the
// anonymous tenant, the manager's default TTL, and a plain cached read.
type Options struct {
	// TTL overrides the manager default for the entry written by this
	// call. Zero or negative keeps the default.
	TTL time.Duration

	// Tenant scopes the lookup. Empty is normalized to the anonymous
	// tenant, so untenanted callers still share one namespace.
	Tenant string

	// ForceRefresh bypasses the cached entry and fetches upstream.
	// The previous entry still serves as a fallback if the fetch fails.
	ForceRefresh bool

	// ETag is the caller's validator for the logical key. When it
	// matches the stored entry's etag the entry is served and its
	// freshness window restarts, even if the TTL had lapsed.
	ETag string

	// Category labels the lookup for metrics and span names, for
	// example "connected-apps" or "app-actions". Optional.
	Category string
}

// ValidateKey rejects logical keys that cannot be stored. Keys must be
// non-blank, free of line breaks, and at most MaxKeyLength bytes.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
