package cache

import "errors"

// MaxKeyLength is the maximum allowed length for a logical cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	// ErrNilFetcher is returned when GetOrFetch is called without a fetcher.
	ErrNilFetcher = errors.New("cache: fetcher is nil")

	// ErrInvalidKey is returned for empty keys or keys with control characters.
	ErrInvalidKey = errors.New("cache: key is invalid")

	// ErrKeyTooLong is returned when a key exceeds MaxKeyLength.
	ErrKeyTooLong = errors.New("cache: key exceeds max length")

	// ErrTypeMismatch is returned by Fetch when a stored value does not have
	// the requested type.
	ErrTypeMismatch = errors.New("cache: cached value has unexpected type")
)
