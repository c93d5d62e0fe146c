package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/jonwraymond/appdiscovery/resilience"
)

const (
	// DefaultBaseURL is the provider API root.
	DefaultBaseURL = "https://backend.composio.dev/api"

	// EnvAPIKey is the environment variable consulted when neither the
	// caller nor the client config supplies a credential.
	EnvAPIKey = "APPDISCOVERY_API_KEY"

	// DefaultCredentialHeader carries the provider credential.
	DefaultCredentialHeader = "x-api-key"

	// DefaultListTimeout bounds a connected-integrations call.
	DefaultListTimeout = 10 * time.Second

	// DefaultActionsTimeout bounds a per-integration action call. Action
	// payloads are heavier than the list call, so it gets longer.
	DefaultActionsTimeout = 15 * time.Second

	// DefaultPageSize caps how many actions one call requests.
	DefaultPageSize = 50
)

// Client is the remote half of the discovery service. The concrete
// implementation is HTTPClient; tests substitute their own.
type Client interface {
	// ConnectedApps lists the integration names connected under the
	// given credential.
	ConnectedApps(ctx context.Context, credential string) ([]string, error)

	// AppActions lists the actions one integration exposes.
	AppActions(ctx context.Context, app, credential string) ([]Action, error)
}

// ClientConfig configures an HTTPClient.
type ClientConfig struct {
	// BaseURL is the provider API root. Default: DefaultBaseURL.
	BaseURL string

	// APIKey is the fallback credential used when a call supplies none.
	// Empty falls back to the EnvAPIKey environment variable.
	APIKey string

	// CredentialHeader names the request header carrying the credential.
	// Default: "x-api-key".
	CredentialHeader string

	// ListTimeout bounds a connected-integrations call. Default: 10s.
	ListTimeout time.Duration

	// ActionsTimeout bounds an action-list call. Default: 15s.
	ActionsTimeout time.Duration

	// PageSize caps the actions requested per integration. Default: 50.
	PageSize int

	// HTTPClient performs the requests. Default: plain http.Client;
	// per-call deadlines ride the request context.
	HTTPClient *http.Client

	// Retry tunes the transient-failure retry guard.
	Retry resilience.RetryConfig

	// Limiter tunes the client-side rate limiter that paces calls to
	// the provider's quota.
	Limiter resilience.LimiterConfig
}

// HTTPClient speaks the provider's REST API with rate limiting, retry, and
// bounded per-call timeouts. Safe for concurrent use.
type HTTPClient struct {
	config  ClientConfig
	http    *http.Client
	retry   *resilience.Retry
	limiter *resilience.RateLimiter
}

// NewHTTPClient creates a provider client, filling unset config fields
// with defaults.
func NewHTTPClient(config ClientConfig) *HTTPClient {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.APIKey == "" {
		config.APIKey = os.Getenv(EnvAPIKey)
	}
	if config.CredentialHeader == "" {
		config.CredentialHeader = DefaultCredentialHeader
	}
	if config.ListTimeout <= 0 {
		config.ListTimeout = DefaultListTimeout
	}
	if config.ActionsTimeout <= 0 {
		config.ActionsTimeout = DefaultActionsTimeout
	}
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if config.Retry.RetryIf == nil {
		config.Retry.RetryIf = transient
	}

	return &HTTPClient{
		config:  config,
		http:    httpClient,
		retry:   resilience.NewRetry(config.Retry),
		limiter: resilience.NewRateLimiter(config.Limiter),
	}
}

// transient reports whether an error is worth retrying: rate-limit pauses,
// 429/5xx statuses, and network failures. Other statuses are final.
func transient(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Transient()
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// ConnectedApps lists the integrations connected under the credential,
// normalized to a flat list of names.
func (c *HTTPClient) ConnectedApps(ctx context.Context, credential string) ([]string, error) {
	credential, err := c.credential(credential)
	if err != nil {
		return nil, err
	}

	query := url.Values{"status": {"ACTIVE"}}
	var envelope struct {
		Items []appItem `json:"items"`
	}
	if err := c.get(ctx, c.config.ListTimeout, "/v1/connectedAccounts", query, credential, &envelope); err != nil {
		return nil, fmt.Errorf("list connected apps: %w", err)
	}
	return normalizeApps(envelope.Items), nil
}

// AppActions lists the actions one integration exposes, capped at the
// configured page size.
func (c *HTTPClient) AppActions(ctx context.Context, app, credential string) ([]Action, error) {
	if app == "" {
		return nil, ErrAppRequired
	}
	credential, err := c.credential(credential)
	if err != nil {
		return nil, err
	}

	query := url.Values{
		"apps":  {app},
		"limit": {strconv.Itoa(c.config.PageSize)},
	}
	var envelope struct {
		Items []actionItem `json:"items"`
	}
	if err := c.get(ctx, c.config.ActionsTimeout, "/v2/actions", query, credential, &envelope); err != nil {
		return nil, fmt.Errorf("list actions for %q: %w", app, err)
	}
	return normalizeActions(envelope.Items, app), nil
}

// credential resolves the effective credential: the caller's, then the
// configured fallback (which already absorbed the environment).
func (c *HTTPClient) credential(credential string) (string, error) {
	if credential != "" {
		return credential, nil
	}
	if c.config.APIKey != "" {
		return c.config.APIKey, nil
	}
	return "", ErrNoCredential
}

// get runs one provider query under its category timeout: wait for a rate
// token, issue the request, retry transient failures until the deadline or
// the attempt budget runs out.
func (c *HTTPClient) get(ctx context.Context, limit time.Duration, path string, query url.Values, credential string, out any) error {
	return resilience.ExecuteWithTimeout(ctx, limit, func(ctx context.Context) error {
		return c.retry.Execute(ctx, func(ctx context.Context) error {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
			return c.do(ctx, path, query, credential, out)
		})
	})
}

// do issues one GET and decodes the JSON body into out.
func (c *HTTPClient) do(ctx context.Context, path string, query url.Values, credential string, out any) error {
	u := c.config.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set(c.config.CredentialHeader, credential)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode provider response: %w", err)
	}
	return nil
}
