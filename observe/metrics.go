package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome classifies how a cache lookup was served.
type Outcome string

const (
	// OutcomeHit means a fresh entry was served without fetching.
	OutcomeHit Outcome = "hit"
	// OutcomeMiss means no usable entry existed and a fetch ran.
	OutcomeMiss Outcome = "miss"
	// OutcomeStale means a fetch failed and an expired entry was served.
	OutcomeStale Outcome = "stale"
	// OutcomeRefresh means the caller forced a bypass of a fresh entry.
	OutcomeRefresh Outcome = "refresh"
)

// Metrics records cache lookup outcomes and provider fetch timings.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordLookup records how a single cache lookup was served.
	RecordLookup(ctx context.Context, meta QueryMeta, outcome Outcome)

	// RecordFetch records a provider fetch with duration and error status.
	RecordFetch(ctx context.Context, meta QueryMeta, duration time.Duration, err error)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	lookupCount  metric.Int64Counter
	fetchErrors  metric.Int64Counter
	fetchLatency metric.Float64Histogram
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	lookupCount, err := meter.Int64Counter(
		"discovery.cache.lookups",
		metric.WithDescription("Cache lookups partitioned by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	fetchErrors, err := meter.Int64Counter(
		"discovery.fetch.errors",
		metric.WithDescription("Provider fetches that returned an error"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	fetchLatency, err := meter.Float64Histogram(
		"discovery.fetch.duration_ms",
		metric.WithDescription("Provider fetch duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		lookupCount:  lookupCount,
		fetchErrors:  fetchErrors,
		fetchLatency: fetchLatency,
	}, nil
}

// RecordLookup records a cache lookup outcome.
func (m *metricsImpl) RecordLookup(ctx context.Context, meta QueryMeta, outcome Outcome) {
	attrs := queryAttrs(meta)
	attrs = append(attrs, attribute.String("outcome", string(outcome)))
	m.lookupCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordFetch records metrics for a provider fetch.
func (m *metricsImpl) RecordFetch(ctx context.Context, meta QueryMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(queryAttrs(meta)...)

	if err != nil {
		m.fetchErrors.Add(ctx, 1, opt)
	}
	m.fetchLatency.Record(ctx, float64(duration.Milliseconds()), opt)
}

// queryAttrs builds the common attribute set for a lookup.
func queryAttrs(meta QueryMeta) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if meta.Category != "" {
		attrs = append(attrs, attribute.String("query.category", meta.Category))
	}
	if meta.Tenant != "" {
		attrs = append(attrs, attribute.String("query.tenant", meta.Tenant))
	}
	if meta.Key != "" {
		attrs = append(attrs, attribute.String("query.key", meta.Key))
	}
	return attrs
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordLookup(ctx context.Context, meta QueryMeta, outcome Outcome) {}
func (m *noopMetrics) RecordFetch(ctx context.Context, meta QueryMeta, duration time.Duration, err error) {
}

// NopMetrics returns a Metrics that drops everything.
func NopMetrics() Metrics {
	return &noopMetrics{}
}
