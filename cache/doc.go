// Package cache implements the tenant-aware response cache that fronts the
// discovery provider.
//
// A Manager owns a key→entry store partitioned by tenant. GetOrFetch decides,
// per lookup, whether to serve a stored value, invoke the supplied fetcher,
// or fall back to an expired value after a failed fetch. Concurrent misses
// on the same composite key share one in-flight fetch.
//
// # Lifecycle
//
// An entry is created on a miss, overwritten by a forced refresh or a later
// natural miss, and removed by the expiry sweep, explicit invalidation, or
// Clear. Expired entries stay retrievable as fallback data until a sweep or
// invalidation removes them.
//
// The expiry sweep runs opportunistically after successful writes, at most
// once per Config.CleanupInterval, and never on a read-only hit path. Set
// Config.JanitorInterval to also sweep on an independent timer; Close stops
// the timer.
package cache
