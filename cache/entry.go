package cache

import (
	"sync/atomic"
	"time"
)

// entry is one cached value. All fields except lastAccess are immutable
// after publication; overwrites and etag revivals install a new entry.
type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
	etag     string
	tenant   string
	key      string // logical key, without the tenant prefix

	lastAccess atomic.Int64 // unix nanos, updated on every serve
}

func newEntry(ten, key string, value any, ttl time.Duration, etag string, now time.Time) *entry {
	e := &entry{
		value:    value,
		storedAt: now,
		ttl:      ttl,
		etag:     etag,
		tenant:   ten,
		key:      key,
	}
	e.lastAccess.Store(now.UnixNano())
	return e
}

// freshAt reports whether the entry is inside its TTL window.
func (e *entry) freshAt(now time.Time) bool {
	return now.Sub(e.storedAt) < e.ttl
}

// expiredAt reports whether the sweep may remove the entry.
func (e *entry) expiredAt(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// age returns how long ago the entry was stored.
func (e *entry) age(now time.Time) time.Duration {
	return now.Sub(e.storedAt)
}

// touch records a serve for least-recently-used ordering.
func (e *entry) touch(now time.Time) {
	e.lastAccess.Store(now.UnixNano())
}

// withStoredAt clones the entry with a restarted freshness window.
func (e *entry) withStoredAt(now time.Time) *entry {
	return newEntry(e.tenant, e.key, e.value, e.ttl, e.etag, now)
}

// compositeKey joins the owning tenant and the logical key. Two tenants
// caching the same logical key never share an entry.
func compositeKey(ten, key string) string {
	return ten + ":" + key
}
