package cache

import (
	"math"
	"time"
)

// Stats is a point-in-time snapshot of cache activity. Counters cover
// every GetOrFetch call since the manager was built or last cleared.
type Stats struct {
	Hits          uint64
	Misses        uint64
	TotalRequests uint64

	// Size counts held entries across all tenants, expired ones included.
	Size int

	// HitRate is the percentage of requests served from cache, rounded
	// to two decimals. Zero when no requests have been made.
	HitRate float64

	// LastCleanup is when the sweep last ran. Zero if it never has.
	LastCleanup time.Time
}

// Stats returns a snapshot of the manager's counters and size.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	size := len(m.entries)
	lastSweep := m.lastSweep
	m.mu.RUnlock()

	hits := m.hits.Load()
	total := m.total.Load()

	s := Stats{
		Hits:          hits,
		Misses:        m.misses.Load(),
		TotalRequests: total,
		Size:          size,
		LastCleanup:   lastSweep,
	}
	if total > 0 {
		s.HitRate = math.Round(float64(hits)/float64(total)*10000) / 100
	}
	return s
}

// Size returns how many entries the manager currently holds.
func (m *Manager) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
