package cache

import "time"

// Default TTLs per lookup category. The specialized fetchers in the
// discovery package bind these; callers may override per call through
// Options.TTL.
const (
	// TTLConnectedApps covers a tenant's connected-integrations list.
	TTLConnectedApps = 10 * time.Minute

	// TTLAppActions covers a single integration's action list.
	TTLAppActions = 30 * time.Minute

	// TTLToolMetadata covers tool and metadata lookups.
	TTLToolMetadata = 60 * time.Minute

	// TTLHealth covers the aggregate provider health report.
	TTLHealth = 5 * time.Minute

	// TTLDefault applies when neither the caller nor the category
	// specifies a TTL.
	TTLDefault = 10 * time.Minute
)

// DefaultCleanupInterval gates the write-coupled expiry sweep.
const DefaultCleanupInterval = 5 * time.Minute
