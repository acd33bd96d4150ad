package validation

import (
	"fmt"

	"github.com/user/templario-go/apperror"
)

// ArgRule binds a StringRule to the location of its argument, as a path into
// the GraphQL argument map ("login" at the top level, "input.username" one
// level down).
type ArgRule struct {
	Path []string
	Rule StringRule
}

// SchemaSet maps operation (field) names to their argument rules. It is
// built once at startup and never mutated afterwards.
type SchemaSet struct {
	operations map[string][]ArgRule
}

// NewSchemaSet builds the rule tables for every validated operation.
func NewSchemaSet() *SchemaSet {
	input := func(name string) []string { return []string{"input", name} }
	top := func(name string) []string { return []string{name} }

	return &SchemaSet{operations: map[string][]ArgRule{
		"createUser": {
			{Path: input("username"), Rule: usernameRule()},
			{Path: input("email"), Rule: emailRule()},
			{Path: input("password"), Rule: passwordRule()},
		},
		"updateCurrentUser": {
			{Path: input("username"), Rule: usernameRule()},
			{Path: input("email"), Rule: emailRule()},
		},
		"updateCurrentUserPassword": {
			{Path: input("password"), Rule: passwordRule()},
		},
		"createToken": {
			{Path: top("login"), Rule: loginRule()},
			{Path: top("password"), Rule: passwordRule()},
		},
		"updateCurrentProfile": {
			{Path: input("name"), Rule: profileNameRule()},
		},
		"template": {
			{Path: top("id"), Rule: idRule()},
		},
		"createTemplate": {
			{Path: input("description"), Rule: templateDescriptionRule()},
		},
		"updateTemplate": {
			{Path: top("id"), Rule: idRule()},
			{Path: input("description"), Rule: templateDescriptionRule()},
		},
		"deleteTemplate": {
			{Path: top("id"), Rule: idRule()},
		},
	}}
}

// Validate runs the rules registered for the operation against the argument
// map and returns every violation, field by field in table order. Operations
// without a table validate trivially.
func (s *SchemaSet) Validate(operation string, args map[string]interface{}) []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	for _, argRule := range s.operations[operation] {
		value := stringAt(args, argRule.Path)
		fieldErrors = append(fieldErrors, argRule.Rule.Validate(value)...)
	}
	return fieldErrors
}

// stringAt walks the argument map along the path. Missing arguments come
// back as the empty string so the required check fires; non-string scalars
// (an id passed as a number) are stringified.
func stringAt(args map[string]interface{}, path []string) string {
	current := interface{}(args)
	for _, key := range path {
		m, ok := current.(map[string]interface{})
		if !ok {
			return ""
		}
		current, ok = m[key]
		if !ok {
			return ""
		}
	}

	switch v := current.(type) {
	case string:
		return v
	case int:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%.0f", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
