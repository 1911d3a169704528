package auth

import "context"

// Identity is the request-scoped authenticated user. Handlers receive it
// through the request context instead of any ambient current-user state.
type Identity struct {
	UserID   int
	Username string
	IsAdmin  bool
}

type identityKey struct{}
type tokenKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

func WithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func SessionTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
