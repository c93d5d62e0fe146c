package tenant

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Anonymous is the tenant ID used when no tenant context is supplied.
const Anonymous = "anonymous"

// Sentinel errors for tenant resolution.
var (
	ErrMalformedToken = errors.New("tenant: malformed token")
	ErrNoSubject      = errors.New("tenant: token has no subject claim")
)

// Normalize canonicalizes a tenant ID. Whitespace is trimmed and an empty
// result falls back to Anonymous, so a normalized ID is always usable as a
// cache partition.
func Normalize(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return Anonymous
	}
	return id
}

// contextKey is unexported so only this package can set the tenant value.
type contextKey struct{}

// WithID returns a new context carrying the given tenant ID.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, Normalize(id))
}

// FromContext returns the tenant ID stored in ctx, or Anonymous if none is
// present.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return Anonymous
}

// FromToken extracts the subject claim from a session token and returns it
// as a tenant ID.
//
// The token is NOT verified here: collaborators authenticate sessions before
// reaching the cache, and this helper only needs a stable identifier from a
// token that has already passed verification upstream. Never use it as an
// authentication check.
func FromToken(raw string) (string, error) {
	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return "", ErrMalformedToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", ErrNoSubject
	}

	return Normalize(sub), nil
}
