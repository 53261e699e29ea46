// Package authctx propagates the authenticated request identity through
// context.Context. The access-gate middleware stores the identity after a
// successful token verification; downstream handlers read it back.
package authctx

import (
	"context"

	"github.com/skillsenselab/quotes/internal/auth"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var identityKey = contextKey{}

// Set stores the authenticated identity in the context.
func Set(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// Get retrieves the authenticated identity from the context.
// ok is false on public routes where no token was verified.
func Get(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(auth.Identity)
	return id, ok
}

// MustGet retrieves the identity and panics if it is missing. Use only in
// handlers guaranteed by routing to sit behind the access gate.
func MustGet(ctx context.Context) auth.Identity {
	id, ok := Get(ctx)
	if !ok {
		panic("authctx: identity not found in context")
	}
	return id
}
