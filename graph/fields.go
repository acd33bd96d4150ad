package graph

import (
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// RequestedFields inspects the query AST for the field being resolved and
// returns the scalar leaves the client asked for, in document order without
// duplicates. Fields with their own selection set (relations like fk_user)
// and introspection fields (__typename) are skipped: the former are resolved
// separately, the latter never touch the database. Fragment spreads and
// inline fragments are flattened.
func RequestedFields(p graphql.ResolveParams) []string {
	seen := make(map[string]bool)
	var fields []string

	for _, fieldAST := range p.Info.FieldASTs {
		if fieldAST.SelectionSet == nil {
			continue
		}
		collectLeaves(fieldAST.SelectionSet, p.Info.Fragments, seen, &fields)
	}

	return fields
}

func collectLeaves(set *ast.SelectionSet, fragments map[string]ast.Definition, seen map[string]bool, fields *[]string) {
	for _, selection := range set.Selections {
		switch sel := selection.(type) {
		case *ast.Field:
			if sel.SelectionSet != nil {
				continue
			}
			name := sel.Name.Value
			if strings.HasPrefix(name, "__") || seen[name] {
				continue
			}
			seen[name] = true
			*fields = append(*fields, name)
		case *ast.FragmentSpread:
			if def, ok := fragments[sel.Name.Value].(*ast.FragmentDefinition); ok && def.SelectionSet != nil {
				collectLeaves(def.SelectionSet, fragments, seen, fields)
			}
		case *ast.InlineFragment:
			if sel.SelectionSet != nil {
				collectLeaves(sel.SelectionSet, fragments, seen, fields)
			}
		}
	}
}
