// Package tenant defines the tenant identifier that partitions cached
// discovery data.
//
// Every cache entry is owned by exactly one tenant; callers that have no
// tenant context fall back to Anonymous. The package provides context
// propagation helpers and a convenience for deriving a tenant ID from an
// already-verified session token.
package tenant
