package health

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultTimeout bounds each endpoint check.
	DefaultTimeout = 5 * time.Second

	// DefaultCredentialHeader carries the provider credential.
	DefaultCredentialHeader = "x-api-key"
)

// ProbeConfig configures a Probe.
type ProbeConfig struct {
	// Endpoints are the candidate provider URLs checked in parallel.
	Endpoints []string

	// Timeout is the maximum time to wait for a single endpoint.
	// Default: 5 seconds.
	Timeout time.Duration

	// CredentialHeader names the request header carrying the credential.
	// Default: "x-api-key".
	CredentialHeader string

	// Client is the HTTP client used for checks.
	// Default: a plain http.Client; the per-endpoint timeout comes from
	// the request context, not the client.
	Client *http.Client
}

// Probe checks a fixed set of provider endpoints.
type Probe struct {
	config ProbeConfig
	client *http.Client
}

// NewProbe creates a probe, filling unset config fields with defaults.
func NewProbe(config ProbeConfig) *Probe {
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.CredentialHeader == "" {
		config.CredentialHeader = DefaultCredentialHeader
	}
	client := config.Client
	if client == nil {
		client = &http.Client{}
	}

	return &Probe{config: config, client: client}
}

// Endpoints returns the configured endpoint list.
func (p *Probe) Endpoints() []string {
	endpoints := make([]string, len(p.config.Endpoints))
	copy(endpoints, p.config.Endpoints)
	return endpoints
}

// Check probes every endpoint in parallel and aggregates the outcome.
// The credential is attached to each request when non-empty. Endpoint
// failures land in the report, not in the returned error; Check itself
// fails only when no endpoints are configured.
func (p *Probe) Check(ctx context.Context, credential string) (Report, error) {
	if len(p.config.Endpoints) == 0 {
		return Report{}, ErrNoEndpoints
	}

	start := time.Now()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		failures  = make(map[string]string)
	)

	for _, endpoint := range p.config.Endpoints {
		wg.Add(1)
		go func(endpoint string) {
			defer wg.Done()

			err := p.checkEndpoint(ctx, endpoint, credential)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[endpoint] = err.Error()
				return
			}
			succeeded++
		}(endpoint)
	}
	wg.Wait()

	checked := len(p.config.Endpoints)
	return Report{
		Healthy:     succeeded > 0,
		SuccessRate: successRate(succeeded, checked),
		Checked:     checked,
		Failures:    failures,
		CheckedAt:   start,
		Duration:    time.Since(start),
	}, nil
}

// checkEndpoint reports nil when the endpoint answers with any status
// below 500. An auth challenge still proves the service is up.
func (p *Probe) checkEndpoint(ctx context.Context, endpoint, credential string) error {
	ctx, cancel := context.WithTimeout(ctx, p.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if credential != "" {
		req.Header.Set(p.config.CredentialHeader, credential)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Drain a bounded amount so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrEndpointDown, resp.StatusCode)
	}
	return nil
}
