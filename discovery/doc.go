// Package discovery exposes the cached fetcher surface for an integration
// provider's discovery API: which integrations a tenant has connected, what
// actions each integration offers, and whether the provider is reachable.
//
// A Service binds the remote queries to a cache.Manager with the TTL that
// fits each lookup category, so collaborators get the stale-fallback,
// coalescing, and invalidation behavior of the cache without wiring it
// themselves. The underlying HTTPClient paces its calls with a client-side
// rate limiter, retries transient provider failures with backoff, and bounds
// every call with a per-category timeout.
//
// # Basic Usage
//
//	svc, err := discovery.NewService(discovery.Config{
//	    ClientConfig: discovery.ClientConfig{APIKey: apiKey},
//	})
//	if err != nil {
//	    return err
//	}
//	defer svc.Close()
//
//	apps, err := svc.ConnectedApps(ctx, tenantID, apiKey, false)
//	if err != nil {
//	    return err
//	}
//	actions, err := svc.BatchAppActions(ctx, apps, tenantID, apiKey, false)
//
// After a tenant authenticates, call Preload to warm their likely lookups in
// the background; after a tenant changes credentials, invalidate through
// svc.Cache().
package discovery
