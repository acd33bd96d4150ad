package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/user/templario-go/apperror"
	"github.com/user/templario-go/auth"
	"github.com/user/templario-go/validation"
)

// RequireAuth fails the field when the request carried no credential at all.
// A credential that was present but failed verification passes through here:
// rejecting it with the right error is VerifyToken's job, so the client can
// tell "you sent nothing" apart from "what you sent is invalid".
func RequireAuth() Decorator {
	return func(next graphql.FieldResolveFn) graphql.FieldResolveFn {
		return func(p graphql.ResolveParams) (interface{}, error) {
			_, hasPrincipal := auth.PrincipalFromContext(p.Context)
			if !hasPrincipal && auth.CredentialFromContext(p.Context) == "" {
				return nil, apperror.NewAuthError("Unauthorized! Token not provided!", nil)
			}
			return next(p)
		}
	}
}

// VerifyToken re-verifies the raw bearer credential's signature and expiry.
// The HTTP middleware already tried this once to attach the principal, but
// protected fields still re-check so an invalid token is reported as a
// field error instead of silently resolving as anonymous.
func VerifyToken(manager *auth.TokenManager) Decorator {
	return func(next graphql.FieldResolveFn) graphql.FieldResolveFn {
		return func(p graphql.ResolveParams) (interface{}, error) {
			raw := auth.CredentialFromContext(p.Context)
			if raw == "" {
				return nil, apperror.NewAuthError("Unauthorized! Token not provided!", nil)
			}
			if _, err := manager.Verify(raw); err != nil {
				return nil, apperror.NewAuthError("invalid token: "+err.Error(), err)
			}
			return next(p)
		}
	}
}

// ValidateArgs checks the field's arguments against the rule table registered
// under the field's name. All violations are collected before failing; a
// field with no table passes through untouched.
func ValidateArgs(schemas *validation.SchemaSet) Decorator {
	return func(next graphql.FieldResolveFn) graphql.FieldResolveFn {
		return func(p graphql.ResolveParams) (interface{}, error) {
			if fieldErrors := schemas.Validate(p.Info.FieldName, p.Args); len(fieldErrors) > 0 {
				return nil, apperror.NewValidationError(fieldErrors)
			}
			return next(p)
		}
	}
}
