package graph

import (
	"time"

	"github.com/graphql-go/graphql"

	"github.com/user/templario-go/apperror"
	"github.com/user/templario-go/auth"
	"github.com/user/templario-go/profiles"
	"github.com/user/templario-go/templates"
	"github.com/user/templario-go/users"
	"github.com/user/templario-go/validation"
)

// NewSchema builds the executable schema: object types, inputs, and the
// Query/Mutation fields with their decorator chains. Chains are declared
// field by field so it is visible at a glance which stages guard what.
func NewSchema(resolvers *Resolvers, manager *auth.TokenManager, schemas *validation.SchemaSet) (graphql.Schema, error) {
	authed := Compose(RequireAuth(), VerifyToken(manager))
	authedValidated := Compose(RequireAuth(), VerifyToken(manager), ValidateArgs(schemas))
	validated := Compose(ValidateArgs(schemas))

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: userField(func(u *users.User) (interface{}, error) {
					return u.ID, nil
				}),
			},
			"username": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u *users.User) (interface{}, error) {
					return u.Username, nil
				}),
			},
			"email": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u *users.User) (interface{}, error) {
					return u.Email, nil
				}),
			},
			"password": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u *users.User) (interface{}, error) {
					return u.Password, nil
				}),
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u *users.User) (interface{}, error) {
					return formatTime(u.CreatedAt), nil
				}),
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: userField(func(u *users.User) (interface{}, error) {
					return formatTime(u.UpdatedAt), nil
				}),
			},
		},
	})

	profileType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Profile",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: profileField(func(pr *profiles.Profile) (interface{}, error) {
					return pr.ID, nil
				}),
			},
			"name": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: profileField(func(pr *profiles.Profile) (interface{}, error) {
					return pr.Name, nil
				}),
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: profileField(func(pr *profiles.Profile) (interface{}, error) {
					return formatTime(pr.CreatedAt), nil
				}),
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: profileField(func(pr *profiles.Profile) (interface{}, error) {
					return formatTime(pr.UpdatedAt), nil
				}),
			},
			"fk_user": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Resolve: resolvers.profileOwner,
			},
		},
	})

	templateType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Template",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: templateField(func(tp *templates.Template) (interface{}, error) {
					return tp.ID, nil
				}),
			},
			"description": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: templateField(func(tp *templates.Template) (interface{}, error) {
					return tp.Description, nil
				}),
			},
			"createdAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: templateField(func(tp *templates.Template) (interface{}, error) {
					return formatTime(tp.CreatedAt), nil
				}),
			},
			"updatedAt": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: templateField(func(tp *templates.Template) (interface{}, error) {
					return formatTime(tp.UpdatedAt), nil
				}),
			},
			"fk_user": &graphql.Field{
				Type:    graphql.NewNonNull(userType),
				Resolve: resolvers.templateOwner,
			},
		},
	})

	tokenType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Token",
		Fields: graphql.Fields{
			"token": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
			},
		},
	})

	userCreateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserCreateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userUpdateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"username": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userUpdatePasswordInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserUpdatePasswordInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	profileUpdateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "ProfileUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	templateCreateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TemplateCreateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	templateUpdateInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "TemplateUpdateInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"currentUser": &graphql.Field{
				Type:    userType,
				Resolve: authed(resolvers.currentUser),
			},
			"currentProfile": &graphql.Field{
				Type:    profileType,
				Resolve: authed(resolvers.currentProfile),
			},
			"template": &graphql.Field{
				Type: templateType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: authedValidated(resolvers.template),
			},
			"templates": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(templateType))),
				Args: graphql.FieldConfigArgument{
					"first":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
				},
				Resolve: authed(resolvers.listTemplates),
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userCreateInput)},
				},
				Resolve: validated(resolvers.createUser),
			},
			"updateCurrentUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userUpdateInput)},
				},
				Resolve: authedValidated(resolvers.updateCurrentUser),
			},
			"updateCurrentUserPassword": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userUpdatePasswordInput)},
				},
				Resolve: authedValidated(resolvers.updateCurrentUserPassword),
			},
			"deleteCurrentUser": &graphql.Field{
				Type:    graphql.Boolean,
				Resolve: authed(resolvers.deleteCurrentUser),
			},
			"updateCurrentProfile": &graphql.Field{
				Type: profileType,
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(profileUpdateInput)},
				},
				Resolve: authedValidated(resolvers.updateCurrentProfile),
			},
			"createTemplate": &graphql.Field{
				Type: graphql.NewNonNull(templateType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(templateCreateInput)},
				},
				Resolve: authedValidated(resolvers.createTemplate),
			},
			"updateTemplate": &graphql.Field{
				Type: graphql.NewNonNull(templateType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(templateUpdateInput)},
				},
				Resolve: authedValidated(resolvers.updateTemplate),
			},
			"deleteTemplate": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: authedValidated(resolvers.deleteTemplate),
			},
			"createToken": &graphql.Field{
				Type: graphql.NewNonNull(tokenType),
				Args: graphql.FieldConfigArgument{
					"login":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: validated(resolvers.createToken),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// formatTime renders timestamps the way clients expect them: RFC 3339, UTC.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// userField, profileField and templateField adapt a typed accessor to a
// graphql resolver, failing loudly if the executor hands over a source of
// the wrong type.

func userField(fn func(*users.User) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		u, ok := p.Source.(*users.User)
		if !ok {
			return nil, apperror.NewInternalError("unexpected source for user field", nil)
		}
		return fn(u)
	}
}

func profileField(fn func(*profiles.Profile) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		pr, ok := p.Source.(*profiles.Profile)
		if !ok {
			return nil, apperror.NewInternalError("unexpected source for profile field", nil)
		}
		return fn(pr)
	}
}

func templateField(fn func(*templates.Template) (interface{}, error)) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		tp, ok := p.Source.(*templates.Template)
		if !ok {
			return nil, apperror.NewInternalError("unexpected source for template field", nil)
		}
		return fn(tp)
	}
}
