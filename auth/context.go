package auth

import (
	"context"
)

// contextKey is a custom type for context keys, preventing collisions with
// keys defined by other packages.
type contextKey string

const (
	principalContextKey  contextKey = "auth_principal"
	credentialContextKey contextKey = "auth_credential"
)

// Principal is the authenticated identity attached to a request after the
// bearer credential has been verified. It is derived exactly once per request
// (in the HTTP middleware) and never re-derived mid-chain.
type Principal struct {
	UserID int
}

// NewContextWithPrincipal returns a child context carrying the principal.
func NewContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext extracts the principal from the context. The second
// return value reports whether a principal was present.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalContextKey).(*Principal)
	return p, ok && p != nil
}

// NewContextWithCredential returns a child context carrying the raw bearer
// credential as it appeared on the wire. The raw form is kept so the
// token-verify resolver can re-check signature and expiry independently of
// whatever decoding already happened.
func NewContextWithCredential(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, credentialContextKey, token)
}

// CredentialFromContext extracts the raw bearer credential from the context.
// An empty string means no credential was supplied.
func CredentialFromContext(ctx context.Context) string {
	token, _ := ctx.Value(credentialContextKey).(string)
	return token
}
