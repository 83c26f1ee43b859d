// Package graphql exposes the to-do service through a single GraphQL endpoint.
package graphql

import "context"

type ctxKey string

const (
	tokenKey      ctxKey = "tg.token"
	remoteAddrKey ctxKey = "tg.remoteAddr"
)

// WithToken stores the raw Authorization header value in the context.
// Resolvers authenticate lazily, so the raw credential travels with the
// request instead of a resolved identity.
func WithToken(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, tokenKey, raw)
}

// TokenFromCtx fetches the raw credential from the context.
func TokenFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(tokenKey).(string)
	return v
}

// WithRemoteAddr stores the client's remote address (for login rate limiting).
func WithRemoteAddr(ctx context.Context, addr string) context.Context {
	return context.WithValue(ctx, remoteAddrKey, addr)
}

// RemoteAddrFromCtx fetches the client's remote address from the context.
func RemoteAddrFromCtx(ctx context.Context) string {
	v, _ := ctx.Value(remoteAddrKey).(string)
	return v
}
