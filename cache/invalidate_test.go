package cache

import (
	"context"
	"testing"
	"time"
)

// seedEntry stores value under key for ten through the normal write path.
func seedEntry(t *testing.T, m *Manager, key, ten string, value any) {
	t.Helper()
	_, err := m.GetOrFetch(context.Background(), key, func(_ context.Context) (any, error) {
		return value, nil
	}, Options{Tenant: ten})
	if err != nil {
		t.Fatalf("seeding %q for %q failed: %v", key, ten, err)
	}
}

// hasEntry reports whether an entry is held for ten and key.
func hasEntry(m *Manager, ten, key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[compositeKey(ten, key)]
	return ok
}

func TestManager_InvalidateTenant(t *testing.T) {
	m, _ := newTestManager(Config{})

	seedEntry(t, m, "connected-apps", "tenant-a", "a-apps")
	seedEntry(t, m, "app-actions-github", "tenant-a", "a-actions")
	seedEntry(t, m, "connected-apps", "tenant-b", "b-apps")

	removed := m.InvalidateTenant("tenant-a")
	if removed != 2 {
		t.Errorf("InvalidateTenant removed %d entries, want 2", removed)
	}

	if hasEntry(m, "tenant-a", "connected-apps") || hasEntry(m, "tenant-a", "app-actions-github") {
		t.Error("tenant-a entries should be gone")
	}
	if !hasEntry(m, "tenant-b", "connected-apps") {
		t.Error("tenant-b entry should be untouched")
	}
	if m.Size() != 1 {
		t.Errorf("expected size 1 after invalidation, got %d", m.Size())
	}

	// Repeating is a no-op, never an error
	if removed := m.InvalidateTenant("tenant-a"); removed != 0 {
		t.Errorf("second InvalidateTenant removed %d, want 0", removed)
	}
}

func TestManager_InvalidateTenantEmptyTargetsAnonymous(t *testing.T) {
	m, _ := newTestManager(Config{})

	seedEntry(t, m, "connected-apps", "", "anon-apps")
	seedEntry(t, m, "connected-apps", "tenant-a", "a-apps")

	if removed := m.InvalidateTenant(""); removed != 1 {
		t.Errorf("InvalidateTenant(\"\") removed %d, want 1", removed)
	}
	if hasEntry(m, "anonymous", "connected-apps") {
		t.Error("anonymous entry should be gone")
	}
	if !hasEntry(m, "tenant-a", "connected-apps") {
		t.Error("named tenant entry should be untouched")
	}
}

func TestManager_InvalidatePattern(t *testing.T) {
	m, _ := newTestManager(Config{})

	seedEntry(t, m, "app-actions-github", "user-1", "gh")
	seedEntry(t, m, "app-actions-slack", "user-1", "sl")
	seedEntry(t, m, "other-key", "user-1", "other")

	removed := m.InvalidatePattern("app-actions-*", "")
	if removed != 2 {
		t.Errorf("InvalidatePattern removed %d entries, want 2", removed)
	}
	if hasEntry(m, "user-1", "app-actions-github") || hasEntry(m, "user-1", "app-actions-slack") {
		t.Error("app-actions entries should be gone")
	}
	if !hasEntry(m, "user-1", "other-key") {
		t.Error("non-matching entry should be untouched")
	}
}

func TestManager_InvalidatePatternTenantScope(t *testing.T) {
	m, _ := newTestManager(Config{})

	seedEntry(t, m, "app-actions-github", "tenant-a", "a")
	seedEntry(t, m, "app-actions-github", "tenant-b", "b")

	// Scoped call touches only the named tenant
	if removed := m.InvalidatePattern("app-actions-*", "tenant-a"); removed != 1 {
		t.Errorf("scoped InvalidatePattern removed %d, want 1", removed)
	}
	if hasEntry(m, "tenant-a", "app-actions-github") {
		t.Error("tenant-a entry should be gone")
	}
	if !hasEntry(m, "tenant-b", "app-actions-github") {
		t.Error("tenant-b entry should be untouched")
	}

	// Empty tenant widens the same pattern to every tenant
	seedEntry(t, m, "app-actions-github", "tenant-a", "a")
	if removed := m.InvalidatePattern("app-actions-*", ""); removed != 2 {
		t.Errorf("unscoped InvalidatePattern removed %d, want 2", removed)
	}
}

func TestManager_InvalidatePatternMatching(t *testing.T) {
	testCases := []struct {
		name    string
		pattern string
		key     string
		match   bool
	}{
		{"prefix wildcard", "app-actions-*", "app-actions-github", true},
		{"prefix wildcard no match", "app-actions-*", "connected-apps", false},
		{"suffix wildcard", "*-github", "app-actions-github", true},
		{"middle wildcard", "app-*-github", "app-actions-github", true},
		{"bare wildcard", "*", "anything-at-all", true},
		{"exact without wildcard", "connected-apps", "connected-apps", true},
		{"exact is anchored", "connected", "connected-apps", false},
		{"dot is literal", "app.actions-*", "app-actions-github", false},
		{"wildcard matches empty", "app-actions-*", "app-actions-", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestManager(Config{})
			seedEntry(t, m, tc.key, "user-1", "v")

			removed := m.InvalidatePattern(tc.pattern, "user-1")
			if got := removed == 1; got != tc.match {
				t.Errorf("pattern %q against %q: removed=%d, want match=%v",
					tc.pattern, tc.key, removed, tc.match)
			}
		})
	}
}

func TestManager_Clear(t *testing.T) {
	m, _ := newTestManager(Config{})
	ctx := context.Background()

	f := &countingFetcher{value: "v"}
	if _, err := m.GetOrFetch(ctx, "apps", f.fetch, Options{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if _, err := m.GetOrFetch(ctx, "apps", f.fetch, Options{}); err != nil {
		t.Fatalf("hit failed: %v", err)
	}

	m.Clear()

	s := m.Stats()
	if s.Hits != 0 || s.Misses != 0 || s.TotalRequests != 0 {
		t.Errorf("counters after Clear = %d/%d/%d, want all zero",
			s.Hits, s.Misses, s.TotalRequests)
	}
	if s.Size != 0 {
		t.Errorf("size after Clear = %d, want 0", s.Size)
	}
	if !s.LastCleanup.IsZero() {
		t.Errorf("LastCleanup after Clear = %v, want zero", s.LastCleanup)
	}

	// The store still works after a clear
	if _, err := m.GetOrFetch(ctx, "apps", f.fetch, Options{}); err != nil {
		t.Fatalf("fetch after Clear failed: %v", err)
	}
	if f.calls.Load() != 2 {
		t.Errorf("expected refetch after Clear, got %d calls", f.calls.Load())
	}
}

func TestManager_SweepGatedByInterval(t *testing.T) {
	m, clock := newTestManager(Config{CleanupInterval: 5 * time.Minute})
	ctx := context.Background()

	shortTTL := Options{TTL: time.Second}
	fetcher := func(v string) Fetcher {
		return func(_ context.Context) (any, error) { return v, nil }
	}

	// First write sweeps the empty store and arms the gate
	if _, err := m.GetOrFetch(ctx, "k1", fetcher("v1"), shortTTL); err != nil {
		t.Fatalf("store k1 failed: %v", err)
	}

	// k1 expires, but the next write lands inside the gate interval
	clock.Advance(2 * time.Second)
	if _, err := m.GetOrFetch(ctx, "k2", fetcher("v2"), shortTTL); err != nil {
		t.Fatalf("store k2 failed: %v", err)
	}
	if m.Size() != 2 {
		t.Errorf("expected expired k1 to survive the gated write, size %d", m.Size())
	}

	// Past the interval the next write sweeps both expired entries
	clock.Advance(5 * time.Minute)
	if _, err := m.GetOrFetch(ctx, "k3", fetcher("v3"), shortTTL); err != nil {
		t.Fatalf("store k3 failed: %v", err)
	}
	if m.Size() != 1 {
		t.Errorf("expected sweep to leave only k3, size %d", m.Size())
	}
	if !hasEntry(m, "anonymous", "k3") {
		t.Error("k3 should be the surviving entry")
	}

	if got := m.Stats().LastCleanup; !got.Equal(clock.Now()) {
		t.Errorf("LastCleanup = %v, want sweep time %v", got, clock.Now())
	}
}

func TestManager_HitPathNeverSweeps(t *testing.T) {
	m, clock := newTestManager(Config{})
	ctx := context.Background()

	f := &countingFetcher{value: "long"}
	if _, err := m.GetOrFetch(ctx, "stable", f.fetch, Options{TTL: time.Hour}); err != nil {
		t.Fatalf("store stable failed: %v", err)
	}
	fShort := &countingFetcher{value: "short"}
	if _, err := m.GetOrFetch(ctx, "short-lived", fShort.fetch, Options{TTL: time.Second}); err != nil {
		t.Fatalf("store short-lived failed: %v", err)
	}

	// Far past both the TTL and the cleanup interval, hits alone must
	// not remove the expired neighbor
	clock.Advance(time.Hour / 2)
	for i := 0; i < 5; i++ {
		if _, err := m.GetOrFetch(ctx, "stable", f.fetch, Options{TTL: time.Hour}); err != nil {
			t.Fatalf("hit %d failed: %v", i, err)
		}
	}
	if !hasEntry(m, "anonymous", "short-lived") {
		t.Error("read-only traffic should not sweep expired entries")
	}
}

func TestGlobToRegexp(t *testing.T) {
	testCases := []struct {
		pattern string
		input   string
		match   bool
	}{
		{"*", "", true},
		{"*", "x", true},
		{"a*", "abc", true},
		{"a*", "ba", false},
		{"*c", "abc", true},
		{"a*c", "abc", true},
		{"a*c", "ac", true},
		{"a*c", "abx", false},
		{"a+b", "a+b", true},
		{"a+b", "aab", false},
		{"[x]", "[x]", true},
		{"[x]", "x", false},
	}

	for _, tc := range testCases {
		re := globToRegexp(tc.pattern)
		if got := re.MatchString(tc.input); got != tc.match {
			t.Errorf("globToRegexp(%q).MatchString(%q) = %v, want %v",
				tc.pattern, tc.input, got, tc.match)
		}
	}
}
