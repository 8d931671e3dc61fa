package auth

import (
	"context"
	"time"
)

type principalKey struct{}

// Principal is the authenticated caller of a tutor request.
type Principal struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext reports false on unauthenticated (learner) requests.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
