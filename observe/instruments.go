package observe

import (
	"context"
	"time"
)

// FetchFunc is the signature of an instrumented provider fetch.
type FetchFunc func(ctx context.Context) (any, error)

// Instruments bundles the telemetry hooks the cache and discovery layers
// emit through.
//
// Contract:
//   - Concurrency: all hooks are safe for concurrent use.
//   - Context: WrapFetch propagates context through the fetch span.
//   - Errors: errors from the wrapped fetch are recorded and propagated
//     unchanged.
type Instruments struct {
	Tracer  Tracer
	Metrics Metrics
	Logger  Logger
}

// NewInstruments builds an Instruments bundle. Nil hooks are replaced with
// no-ops, so callers can configure only what they need.
func NewInstruments(tracer Tracer, metrics Metrics, logger Logger) *Instruments {
	if tracer == nil {
		tracer = NopTracer()
	}
	if metrics == nil {
		metrics = NopMetrics()
	}
	if logger == nil {
		logger = NopLogger()
	}
	return &Instruments{
		Tracer:  tracer,
		Metrics: metrics,
		Logger:  logger,
	}
}

// InstrumentsFromObserver builds an Instruments bundle from an Observer.
func InstrumentsFromObserver(obs Observer) (*Instruments, error) {
	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewInstruments(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}

// NopInstruments returns a bundle that drops everything.
func NopInstruments() *Instruments {
	return NewInstruments(nil, nil, nil)
}

// WrapFetch wraps a provider fetch with a span, a duration metric, and a
// log line. The error from the fetch is returned unchanged.
func (ins *Instruments) WrapFetch(meta QueryMeta, fn FetchFunc) FetchFunc {
	return func(ctx context.Context) (any, error) {
		ctx, span := ins.Tracer.StartSpan(ctx, meta)

		start := time.Now()
		result, err := fn(ctx)
		duration := time.Since(start)

		ins.Tracer.EndSpan(span, err)
		ins.Metrics.RecordFetch(ctx, meta, duration, err)

		logger := ins.Logger.WithQuery(meta)
		fields := []Field{
			{Key: "duration_ms", Value: float64(duration.Milliseconds())},
		}

		if err != nil {
			fields = append(fields, Field{Key: "error", Value: err.Error()})
			logger.Error(ctx, "provider fetch failed", fields...)
		} else {
			logger.Debug(ctx, "provider fetch completed", fields...)
		}

		return result, err
	}
}
