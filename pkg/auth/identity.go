package auth

import "context"

// Identity is the caller decoded from a bearer token. The zero value means
// unauthenticated.
type Identity struct {
	UserID uint
	Role   string
}

// Authenticated reports whether the identity carries a user id.
func (i Identity) Authenticated() bool { return i.UserID != 0 }

type ctxKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by the auth middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || !id.Authenticated() {
		return Identity{}, false
	}
	return id, true
}
