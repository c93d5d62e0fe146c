// Package health probes the remote discovery provider.
//
// A Probe holds a set of candidate provider endpoints and checks them all
// in parallel, each under its own short timeout. The outcome is a single
// aggregate Report rather than per-endpoint results: the provider counts
// as healthy while at least one endpoint still answers.
//
// # Basic Usage
//
//	probe := health.NewProbe(health.ProbeConfig{
//	    Endpoints: []string{
//	        "https://backend.composio.dev/api/v1/apps",
//	        "https://backend.composio.dev/api/v2/actions",
//	    },
//	    Timeout: 5 * time.Second,
//	})
//
//	report, err := probe.Check(ctx, apiKey)
//	if err != nil {
//	    return err
//	}
//	if !report.Healthy {
//	    log.Printf("provider down: %v", report.Failures)
//	}
//
// An endpoint counts as answering when it returns any status below 500;
// an auth challenge still proves the service is up.
//
// # HTTP Endpoints
//
// The package provides handlers for exposing probe results:
//
//	http.Handle("/healthz", health.LivenessHandler())
//	http.Handle("/health/provider", health.ProbeHandler(probe, apiKey))
package health
