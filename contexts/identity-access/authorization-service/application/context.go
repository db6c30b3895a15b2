package application

import (
	"context"

	"campus/contexts/identity-access/authorization-service/domain/entities"
)

type principalContextKey struct{}

// ContextWithPrincipal binds the resolved principal to the request context.
// The principal is an immutable value; concurrent requests each carry their
// own and can never observe another request's identity.
func ContextWithPrincipal(ctx context.Context, principal entities.Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext returns the principal bound by ContextWithPrincipal.
func PrincipalFromContext(ctx context.Context) (entities.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(entities.Principal)
	return principal, ok
}
