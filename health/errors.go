package health

import "errors"

var (
	// ErrNoEndpoints indicates a probe was checked with no endpoints configured.
	ErrNoEndpoints = errors.New("health: no endpoints configured")

	// ErrEndpointDown indicates an endpoint answered with a server error.
	ErrEndpointDown = errors.New("health: endpoint returned server error")
)
