// Package graph builds the GraphQL schema and the resolver pipeline around
// it: decorator composition, per-request batch loading, requested-field
// projection and the HTTP transport with its error envelope.
package graph

import "github.com/graphql-go/graphql"

// Decorator wraps a field resolver with a cross-cutting stage such as
// authentication or argument validation. A decorator either calls next or
// returns an error; it never swallows the terminal resolver's result.
type Decorator func(next graphql.FieldResolveFn) graphql.FieldResolveFn

// Compose applies decorators around a terminal resolver so the first listed
// decorator runs first on the way in. Compose(a, b)(r) evaluates as a(b(r)).
// The decorator slice is read, never mutated, so one chain can be reused
// across fields.
func Compose(decorators ...Decorator) func(graphql.FieldResolveFn) graphql.FieldResolveFn {
	return func(resolver graphql.FieldResolveFn) graphql.FieldResolveFn {
		wrapped := resolver
		for i := len(decorators) - 1; i >= 0; i-- {
			wrapped = decorators[i](wrapped)
		}
		return wrapped
	}
}
