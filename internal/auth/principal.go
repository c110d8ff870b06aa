package auth

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated caller attached to a request context.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Admin  bool
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying p.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the caller attached to ctx, if any.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// IsAdmin reports whether ctx carries the admin capability.
func IsAdmin(ctx context.Context) bool {
	p, ok := PrincipalFrom(ctx)
	return ok && p.Admin
}

// RequireAdmin returns ErrForbidden unless ctx carries the admin capability.
func RequireAdmin(ctx context.Context) error {
	if !IsAdmin(ctx) {
		return ErrForbidden
	}
	return nil
}
