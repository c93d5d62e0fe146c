// Package observe provides observability primitives for discovery lookups.
//
// It is a pure instrumentation library: no caching, no transport, no I/O
// beyond exporter setup. The cache and discovery layers emit through the
// Instruments bundle; everything degrades to no-ops when unconfigured.
package observe
