package auth

import (
	"net/http"
	"strings"
)

// ExtractTokenMiddleware returns HTTP middleware that pulls the bearer
// credential off the Authorization header and, when it verifies, attaches the
// decoded principal to the request context.
//
// Unlike a guard, this middleware never rejects the request: the GraphQL
// schema mixes public fields (createUser, createToken) with protected ones,
// so the decision to fail belongs to the per-field resolver chain. The raw
// credential is stored alongside the principal so the chain can distinguish
// "no credential" from "credential present but invalid".
func ExtractTokenMiddleware(manager *TokenManager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			// The Authorization header should be in the format "Bearer {token}".
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := NewContextWithCredential(r.Context(), parts[1])

			if claims, err := manager.Verify(parts[1]); err == nil {
				if userID, idErr := claims.UserID(); idErr == nil {
					ctx = NewContextWithPrincipal(ctx, &Principal{UserID: userID})
				}
			}
			// Verification failures are not terminal here; the token-verify
			// resolver reports them with a field-level error.

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
