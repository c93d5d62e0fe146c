package cache

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonwraymond/appdiscovery/tenant"
)

// InvalidateTenant removes every entry owned by ten and returns how many
// were removed. An empty ten targets the anonymous tenant.
func (m *Manager) InvalidateTenant(ten string) int {
	ten = tenant.Normalize(ten)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for ck, e := range m.entries {
		if e.tenant != ten {
			continue
		}
		m.removeLocked(ck, e)
		removed++
	}
	return removed
}

// InvalidatePattern removes entries whose logical key matches pattern and
// returns how many were removed. The only wildcard is '*', which matches
// any run of characters, so "app-actions-*" clears every per-app action
// list. Unlike Options.Tenant, an empty ten here widens the match to all
// tenants rather than targeting the anonymous one.
func (m *Manager) InvalidatePattern(pattern, ten string) int {
	re := globToRegexp(pattern)
	matchAll := ten == ""
	if !matchAll {
		ten = tenant.Normalize(ten)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for ck, e := range m.entries {
		if !matchAll && e.tenant != ten {
			continue
		}
		if !re.MatchString(e.key) {
			continue
		}
		m.removeLocked(ck, e)
		removed++
	}
	return removed
}

// Clear drops every entry for every tenant and resets the counters, as if
// the manager were newly built.
func (m *Manager) Clear() {
	m.mu.Lock()
	m.entries = make(map[string]*entry)
	m.tenantCount = make(map[string]int)
	m.lastSweep = time.Time{}
	m.mu.Unlock()

	m.hits.Store(0)
	m.misses.Store(0)
	m.total.Store(0)
}

// maybeSweepLocked runs the sweep when a full cleanup interval has passed
// since the previous one. Called with mu held after a write.
func (m *Manager) maybeSweepLocked(now time.Time) {
	if now.Sub(m.lastSweep) < m.cfg.CleanupInterval {
		return
	}
	m.sweepLocked(now)
}

// sweepLocked removes entries past their TTL. Until a sweep or an
// overwrite removes it, an expired entry stays retrievable as the
// fallback for a failed fetch.
func (m *Manager) sweepLocked(now time.Time) {
	for ck, e := range m.entries {
		if !e.expiredAt(now) {
			continue
		}
		m.removeLocked(ck, e)
	}
	m.lastSweep = now
}

// globToRegexp compiles a '*' glob into an anchored regexp. Everything
// except the wildcard is matched literally.
func globToRegexp(pattern string) *regexp.Regexp {
	parts := strings.Split(pattern, "*")
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile("^" + strings.Join(parts, ".*") + "$")
}
