package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/appdiscovery/observe"
	"github.com/jonwraymond/appdiscovery/tenant"
)

// Config configures a Manager. The zero value is usable: lookups default
// to TTLDefault, sweeps to DefaultCleanupInterval, telemetry to no-ops.
type Config struct {
	// DefaultTTL applies to entries written without a per-call TTL.
	DefaultTTL time.Duration

	// CleanupInterval gates the write-coupled sweep. A successful write
	// triggers at most one sweep per interval.
	CleanupInterval time.Duration

	// JanitorInterval, when positive, starts a background goroutine that
	// sweeps on its own clock. Useful for read-mostly workloads where
	// writes are too rare to carry the sweep. Callers that set it should
	// Close the manager.
	JanitorInterval time.Duration

	// MaxEntriesPerTenant caps how many entries a single tenant may hold.
	// Zero means unbounded. The least recently served entry is evicted
	// when a write would exceed the cap.
	MaxEntriesPerTenant int

	// Instruments supplies tracing, metrics, and logging hooks.
	// Nil means no telemetry.
	Instruments *observe.Instruments
}

// Manager is a tenant-partitioned TTL cache that fronts a slow provider.
// Concurrent fetches for the same tenant and key are coalesced into one
// upstream call, and failed fetches fall back to the previous entry when
// one is still held.
type Manager struct {
	cfg Config
	ins *observe.Instruments

	mu          sync.RWMutex
	entries     map[string]*entry
	tenantCount map[string]int
	lastSweep   time.Time

	group singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
	total  atomic.Uint64

	stop      chan struct{}
	closeOnce sync.Once

	now func() time.Time
}

// NewManager builds a Manager from cfg, filling unset fields with the
// package defaults.
func NewManager(cfg Config) *Manager {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = TTLDefault
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}
	ins := cfg.Instruments
	if ins == nil {
		ins = observe.NopInstruments()
	}

	m := &Manager{
		cfg:         cfg,
		ins:         ins,
		entries:     make(map[string]*entry),
		tenantCount: make(map[string]int),
		stop:        make(chan struct{}),
		now:         time.Now,
	}
	if cfg.JanitorInterval > 0 {
		go m.janitor(cfg.JanitorInterval)
	}
	return m
}

// Close stops the background janitor, if one was started. It is safe to
// call more than once and safe on managers without a janitor.
func (m *Manager) Close() error {
	m.closeOnce.Do(func() { close(m.stop) })
	return nil
}

// GetOrFetch returns the cached value for key under the caller's tenant,
// fetching it from the provider when no fresh entry exists.
//
// A fresh entry is served directly. An expired entry whose etag matches
// opts.ETag is served and its freshness window restarts. Otherwise the
// fetcher runs; concurrent callers of the same tenant and key share one
// fetch. When the fetch fails and a previous entry is still held, that
// entry is served in its place and the error is only logged.
func (m *Manager) GetOrFetch(ctx context.Context, key string, fetcher Fetcher, opts Options) (any, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	if fetcher == nil {
		return nil, ErrNilFetcher
	}

	m.total.Add(1)

	ten := tenant.Normalize(opts.Tenant)
	ck := compositeKey(ten, key)
	meta := observe.QueryMeta{Category: opts.Category, Tenant: ten, Key: key}

	if !opts.ForceRefresh {
		if value, ok := m.lookup(ck, opts.ETag); ok {
			m.hits.Add(1)
			m.ins.Metrics.RecordLookup(ctx, meta, observe.OutcomeHit)
			return value, nil
		}
	}

	m.misses.Add(1)
	outcome := observe.OutcomeMiss
	if opts.ForceRefresh {
		outcome = observe.OutcomeRefresh
	}

	wrapped := m.ins.WrapFetch(meta, observe.FetchFunc(fetcher))
	value, err, _ := m.group.Do(ck, func() (any, error) {
		v, fetchErr := wrapped(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}
		m.store(ten, key, ck, v, opts)
		return v, nil
	})
	if err != nil {
		if stale, ok := m.lookupStale(ck); ok {
			m.ins.Metrics.RecordLookup(ctx, meta, observe.OutcomeStale)
			m.ins.Logger.WithQuery(meta).Warn(ctx, "serving stale entry after fetch failure",
				observe.Field{Key: "error", Value: err.Error()},
				observe.Field{Key: "age", Value: stale.age(m.now()).Round(time.Millisecond).String()},
			)
			return stale.value, nil
		}
		m.ins.Metrics.RecordLookup(ctx, meta, outcome)
		return nil, err
	}

	m.ins.Metrics.RecordLookup(ctx, meta, outcome)
	return value, nil
}

// lookup returns the value under ck when the entry is fresh, or when the
// caller's etag matches an expired entry. An etag match restarts the
// entry's freshness window.
func (m *Manager) lookup(ck, etag string) (any, bool) {
	now := m.now()

	m.mu.RLock()
	e, ok := m.entries[ck]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if e.freshAt(now) {
		e.touch(now)
		return e.value, true
	}

	if etag == "" || etag != e.etag {
		return nil, false
	}

	// The provider's validator still matches, so the entry is revived
	// with a restarted window instead of refetched.
	revived := e.withStoredAt(now)
	m.mu.Lock()
	if cur, held := m.entries[ck]; held && cur == e {
		m.entries[ck] = revived
	}
	m.mu.Unlock()
	return e.value, true
}

// lookupStale returns whatever entry is held under ck, fresh or not.
// Used as the fallback path after a failed fetch.
func (m *Manager) lookupStale(ck string) (*entry, bool) {
	m.mu.RLock()
	e, ok := m.entries[ck]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	e.touch(m.now())
	return e, true
}

// store publishes a fetched value, enforces the per-tenant cap, and gives
// the write-coupled sweep a chance to run.
func (m *Manager) store(ten, key, ck string, value any, opts Options) {
	now := m.now()
	e := newEntry(ten, key, value, m.effectiveTTL(opts.TTL), opts.ETag, now)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[ck]; !exists {
		m.tenantCount[ten]++
	}
	m.entries[ck] = e

	if limit := m.cfg.MaxEntriesPerTenant; limit > 0 {
		for m.tenantCount[ten] > limit {
			if !m.evictOldestLocked(ten, ck) {
				break
			}
		}
	}
	m.maybeSweepLocked(now)
}

// evictOldestLocked removes the tenant's least recently served entry,
// never the one under keep. Reports whether a victim was found.
func (m *Manager) evictOldestLocked(ten, keep string) bool {
	var (
		victimKey string
		victim    *entry
	)
	for ck, e := range m.entries {
		if e.tenant != ten || ck == keep {
			continue
		}
		if victim == nil || e.lastAccess.Load() < victim.lastAccess.Load() {
			victim, victimKey = e, ck
		}
	}
	if victim == nil {
		return false
	}
	m.removeLocked(victimKey, victim)
	return true
}

// removeLocked deletes an entry and keeps the tenant count in step.
func (m *Manager) removeLocked(ck string, e *entry) {
	delete(m.entries, ck)
	m.tenantCount[e.tenant]--
	if m.tenantCount[e.tenant] <= 0 {
		delete(m.tenantCount, e.tenant)
	}
}

func (m *Manager) effectiveTTL(ttl time.Duration) time.Duration {
	if ttl > 0 {
		return ttl
	}
	return m.cfg.DefaultTTL
}

// janitor sweeps on a fixed interval until Close.
func (m *Manager) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.sweepLocked(m.now())
			m.mu.Unlock()
		case <-m.stop:
			return
		}
	}
}
