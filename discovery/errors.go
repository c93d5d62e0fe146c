package discovery

import (
	"errors"
	"fmt"
)

// Sentinel errors for discovery operations.
var (
	// ErrNoCredential is returned when neither the caller, the client
	// config, nor the environment supplies a provider credential.
	ErrNoCredential = errors.New("discovery: no provider credential")

	// ErrAppRequired is returned when an action lookup names no app.
	ErrAppRequired = errors.New("discovery: app name is required")

	// ErrBaseURL is returned by NewService when the configured provider
	// base URL cannot be parsed.
	ErrBaseURL = errors.New("discovery: invalid provider base URL")
)

// StatusError reports a non-success HTTP status from the provider. The
// retry guard treats 429 and 5xx as transient; everything else fails the
// call immediately.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("discovery: provider returned status %d", e.Code)
}

// Transient reports whether the status is worth retrying.
func (e *StatusError) Transient() bool {
	return e.Code == 429 || e.Code >= 500
}
