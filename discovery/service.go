package discovery

import (
	"context"
	"net/url"
	"sync"

	"github.com/jonwraymond/appdiscovery/cache"
	"github.com/jonwraymond/appdiscovery/health"
	"github.com/jonwraymond/appdiscovery/observe"
)

// Logical cache keys used by the specialized fetchers. Collaborators pass
// these (or globs over them) to the cache's invalidation operations.
const (
	// KeyConnectedApps holds a tenant's connected-integrations list.
	KeyConnectedApps = "connected-apps"

	// KeyAppActionsPrefix prefixes per-integration action lists; the
	// glob KeyAppActionsPrefix + "*" matches them all.
	KeyAppActionsPrefix = "app-actions-"

	// KeyProviderHealth holds the aggregate provider health report.
	KeyProviderHealth = "provider-health"
)

// KeyAppActions returns the logical cache key for one integration's
// action list.
func KeyAppActions(app string) string {
	return KeyAppActionsPrefix + app
}

// DefaultPreloadAppLimit caps how many integrations Preload warms.
const DefaultPreloadAppLimit = 5

// Config configures a Service.
type Config struct {
	// Client performs the remote calls. Default: an HTTPClient built
	// from ClientConfig.
	Client Client

	// ClientConfig configures the default HTTPClient; ignored when
	// Client is set, except that BaseURL still seeds the default probe
	// endpoints.
	ClientConfig ClientConfig

	// Cache holds the fetched results. Default: a manager owned (and
	// closed) by the service.
	Cache *cache.Manager

	// Probe checks provider health. Default: a probe over the
	// provider's list and action endpoints.
	Probe *health.Probe

	// Instruments supplies telemetry hooks, shared with an owned cache.
	// Nil means no telemetry.
	Instruments *observe.Instruments

	// PreloadAppLimit caps how many integrations Preload warms.
	// Default: 5.
	PreloadAppLimit int
}

// Service is the cached fetcher surface over the provider's discovery API.
// One instance is shared by all collaborators of a session; tenants stay
// isolated through the cache's composite keys.
type Service struct {
	client       Client
	cache        *cache.Manager
	probe        *health.Probe
	ins          *observe.Instruments
	preloadLimit int
	ownsCache    bool
}

// NewService builds a Service, constructing the client, cache, and probe
// that the config leaves unset.
func NewService(cfg Config) (*Service, error) {
	base := cfg.ClientConfig.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	if u, err := url.Parse(base); err != nil || u.Scheme == "" || u.Host == "" {
		return nil, ErrBaseURL
	}

	ins := cfg.Instruments
	if ins == nil {
		ins = observe.NopInstruments()
	}

	client := cfg.Client
	if client == nil {
		client = NewHTTPClient(cfg.ClientConfig)
	}

	mgr := cfg.Cache
	ownsCache := false
	if mgr == nil {
		mgr = cache.NewManager(cache.Config{Instruments: ins})
		ownsCache = true
	}

	probe := cfg.Probe
	if probe == nil {
		probe = health.NewProbe(health.ProbeConfig{
			Endpoints: []string{
				base + "/v1/apps",
				base + "/v2/actions",
			},
			CredentialHeader: cfg.ClientConfig.CredentialHeader,
		})
	}

	limit := cfg.PreloadAppLimit
	if limit <= 0 {
		limit = DefaultPreloadAppLimit
	}

	return &Service{
		client:       client,
		cache:        mgr,
		probe:        probe,
		ins:          ins,
		preloadLimit: limit,
		ownsCache:    ownsCache,
	}, nil
}

// Cache exposes the service's cache manager so collaborators can
// invalidate after credential or integration-set changes and read stats.
func (s *Service) Cache() *cache.Manager {
	return s.cache
}

// Close releases the cache manager when the service owns it. A manager
// supplied through Config stays open for its owner to close.
func (s *Service) Close() error {
	if s.ownsCache {
		return s.cache.Close()
	}
	return nil
}

// ConnectedApps returns the integration names connected for the tenant,
// served from cache for up to ten minutes unless force is set.
func (s *Service) ConnectedApps(ctx context.Context, ten, credential string, force bool) ([]string, error) {
	return cache.Fetch(ctx, s.cache, KeyConnectedApps, func(ctx context.Context) ([]string, error) {
		return s.client.ConnectedApps(ctx, credential)
	}, cache.Options{
		TTL:          cache.TTLConnectedApps,
		Tenant:       ten,
		ForceRefresh: force,
		Category:     "connected-apps",
	})
}

// AppActions returns the actions one integration exposes for the tenant,
// served from cache for up to thirty minutes unless force is set.
func (s *Service) AppActions(ctx context.Context, app, ten, credential string, force bool) ([]Action, error) {
	if app == "" {
		return nil, ErrAppRequired
	}
	return cache.Fetch(ctx, s.cache, KeyAppActions(app), func(ctx context.Context) ([]Action, error) {
		return s.client.AppActions(ctx, app, credential)
	}, cache.Options{
		TTL:          cache.TTLAppActions,
		Tenant:       ten,
		ForceRefresh: force,
		Category:     "app-actions",
	})
}

// BatchAppActions fans AppActions out concurrently over the given
// integrations and collects the results per integration. A failed
// integration degrades to an empty slice with a logged warning; the batch
// itself never fails. Duplicate names are fetched once.
func (s *Service) BatchAppActions(ctx context.Context, apps []string, ten, credential string, force bool) (map[string][]Action, error) {
	results := make(map[string][]Action, len(apps))
	seen := make(map[string]bool, len(apps))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, app := range apps {
		if app == "" || seen[app] {
			continue
		}
		seen[app] = true

		wg.Add(1)
		go func(app string) {
			defer wg.Done()

			actions, err := s.AppActions(ctx, app, ten, credential, force)
			if err != nil {
				s.ins.Logger.WithQuery(observe.QueryMeta{
					Category: "app-actions",
					Tenant:   ten,
					Key:      KeyAppActions(app),
				}).Warn(ctx, "batch item failed, degrading to empty action list",
					observe.Field{Key: "app", Value: app},
					observe.Field{Key: "error", Value: err.Error()},
				)
				actions = []Action{}
			}

			mu.Lock()
			results[app] = actions
			mu.Unlock()
		}(app)
	}
	wg.Wait()

	return results, nil
}

// CheckHealth returns the provider's aggregate health report, served from
// cache for up to five minutes unless force is set.
func (s *Service) CheckHealth(ctx context.Context, ten, credential string, force bool) (health.Report, error) {
	return cache.Fetch(ctx, s.cache, KeyProviderHealth, func(ctx context.Context) (health.Report, error) {
		return s.probe.Check(ctx, credential)
	}, cache.Options{
		TTL:          cache.TTLHealth,
		Tenant:       ten,
		ForceRefresh: force,
		Category:     "health",
	})
}

// Preload warms the tenant's likely lookups after authentication. The
// connected-integrations list is fetched synchronously and its error
// returned; action lists for the first few integrations and the health
// probe then warm in the background, detached from the caller's
// cancellation, with failures logged and never surfaced.
func (s *Service) Preload(ctx context.Context, ten, credential string) error {
	apps, err := s.ConnectedApps(ctx, ten, credential, false)
	if err != nil {
		return err
	}

	warm := apps[:min(len(apps), s.preloadLimit)]
	bg := context.WithoutCancel(ctx)

	go func() {
		if _, err := s.BatchAppActions(bg, warm, ten, credential, false); err != nil {
			s.ins.Logger.Warn(bg, "preload batch failed",
				observe.Field{Key: "tenant", Value: ten},
				observe.Field{Key: "error", Value: err.Error()},
			)
		}
	}()
	go func() {
		if _, err := s.CheckHealth(bg, ten, credential, false); err != nil {
			s.ins.Logger.Warn(bg, "preload health probe failed",
				observe.Field{Key: "tenant", Value: ten},
				observe.Field{Key: "error", Value: err.Error()},
			)
		}
	}()

	return nil
}
