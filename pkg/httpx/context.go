package httpx

import (
	"context"

	"github.com/aussiebroadwan/campus/pkg/authz"
	"github.com/aussiebroadwan/campus/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID   ctxKey = "user_id"
	CtxKeyIdentity ctxKey = "identity"
)

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	id := c.Identity()
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyIdentity, &id)
	return ctx
}

// IdentityFromContext returns the verified caller, or nil for anonymous
// requests.
func IdentityFromContext(ctx context.Context) *authz.Identity {
	id, ok := ctx.Value(CtxKeyIdentity).(*authz.Identity)
	if !ok {
		return nil
	}
	return id
}
