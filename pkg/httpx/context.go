package httpx

import (
	"context"

	"github.com/KimuJinsu/go-jwt-auth/pkg/jwtx"
)

type principalKey struct{}

// ContextWithPrincipal returns a context carrying the authenticated
// principal for downstream authorization checks.
func ContextWithPrincipal(ctx context.Context, p jwtx.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal the authentication gate
// attached to this request, if any.
func PrincipalFromContext(ctx context.Context) (jwtx.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(jwtx.Principal)
	return p, ok
}
