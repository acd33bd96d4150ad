package graph

import (
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/user/templario-go/apperror"
	"github.com/user/templario-go/auth"
	"github.com/user/templario-go/profiles"
	"github.com/user/templario-go/templates"
	"github.com/user/templario-go/users"
)

// Token is the payload of a successful createToken mutation.
type Token struct {
	Token string `json:"token"`
}

// Resolvers holds the terminal resolvers behind the schema's fields.
// Cross-cutting stages (auth, token verification, validation) are layered on
// top of these by Compose when the schema is built.
type Resolvers struct {
	users     UserService
	profiles  ProfileService
	templates TemplateService
	tokens    *auth.TokenManager
}

// NewResolvers wires the resolver set to its services.
func NewResolvers(u UserService, p ProfileService, t TemplateService, tokens *auth.TokenManager) *Resolvers {
	return &Resolvers{users: u, profiles: p, templates: t, tokens: tokens}
}

// principalID extracts the authenticated user's id. The auth stages run
// before any resolver that calls this, so a missing principal means the
// chain was miswired rather than a user mistake; it still fails closed.
func principalID(p graphql.ResolveParams) (int, error) {
	principal, ok := auth.PrincipalFromContext(p.Context)
	if !ok {
		return 0, apperror.NewAuthError("Unauthorized! Token not provided!", nil)
	}
	return principal.UserID, nil
}

// argID parses an ID argument. IDs travel as strings on the wire.
func argID(p graphql.ResolveParams, name string) (int, error) {
	raw, _ := p.Args[name].(string)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperror.NewBadRequestError("invalid id", err)
	}
	return id, nil
}

// argInput returns the object argument named "input". Non-null input types
// guarantee presence, but a defensive empty map keeps lookups safe.
func argInput(p graphql.ResolveParams) map[string]interface{} {
	input, ok := p.Args["input"].(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return input
}

func argString(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func (r *Resolvers) currentUser(p graphql.ResolveParams) (interface{}, error) {
	userID, err := principalID(p)
	if err != nil {
		return nil, err
	}
	return r.users.FindByID(p.Context, userID, RequestedFields(p))
}

func (r *Resolvers) createUser(p graphql.ResolveParams) (interface{}, error) {
	input := argInput(p)
	return r.users.CreateWithProfile(p.Context, users.CreateInput{
		Username: argString(input, "username"),
		Email:    argString(input, "email"),
		Password: argString(input, "password"),
	})
}

func (r *Resolvers) updateCurrentUser(p graphql.ResolveParams) (interface{}, error) {
	userID, err := principalID(p)
	if err != nil {
		return nil, err
	}
	input := argInput(p)
	return r.users.Update(p.Context, userID, users.UpdateInput{
		Username: argString(input, "username"),
		Email:    argString(input, "email"),
	})
}

func (r *Resolvers) updateCurrentUserPassword(p graphql.ResolveParams) (interface{}, error) {
	userID, err := principalID(p)
	if err != nil {
		return nil, err
	}
	return r.users.UpdatePassword(p.Context, userID, argString(argInput(p), "password"))
}

func (r *Resolvers) deleteCurrentUser(p graphql.ResolveParams) (interface{}, error) {
	userID, err := principalID(p)
	if err != nil {
		return nil, err
	}
	return r.users.DeleteWithProfile(p.Context, userID)
}

func (r *Resolvers) currentProfile(p graphql.ResolveParams) (interface{}, error) {
	userID, err := principalID(p)
	if err != nil {
		return nil, err
	}
	return r.profiles.FindByUser(p.Context, userID, RequestedFields(p))
}

func (r *Resolvers) updateCurrentProfile(p graphql.ResolveParams) (interface{}, error) {
	userID, err := principalID(p)
	if err != nil {
		return nil, err
	}
	return r.profiles.UpdateByUser(p.Context, userID, profiles.UpdateInput{
		Name: argString(argInput(p), "name"),
	})
}

func (r *Resolvers) template(p graphql.ResolveParams) (interface{}, error) {
	templateID, err := argID(p, "id")
	if err != nil {
		return nil, err
	}
	return r.templates.FindByID(p.Context, templateID, RequestedFields(p))
}

func (r *Resolvers) listTemplates(p graphql.ResolveParams) (interface{}, error) {
	first, _ := p.Args["first"].(int)
	offset, _ := p.Args["offset"].(int)
	return r.templates.List(p.Context, first, offset, RequestedFields(p))
}

func (r *Resolvers) createTemplate(p graphql.ResolveParams) (interface{}, error) {
	userID, err := principalID(p)
	if err != nil {
		return nil, err
	}
	return r.templates.Create(p.Context, userID, templates.CreateInput{
		Description: argString(argInput(p), "description"),
	})
}

func (r *Resolvers) updateTemplate(p graphql.ResolveParams) (interface{}, error) {
	userID, err := principalID(p)
	if err != nil {
		return nil, err
	}
	templateID, err := argID(p, "id")
	if err != nil {
		return nil, err
	}
	return r.templates.Update(p.Context, templateID, userID, templates.UpdateInput{
		Description: argString(argInput(p), "description"),
	})
}

func (r *Resolvers) deleteTemplate(p graphql.ResolveParams) (interface{}, error) {
	userID, err := principalID(p)
	if err != nil {
		return nil, err
	}
	templateID, err := argID(p, "id")
	if err != nil {
		return nil, err
	}
	return r.templates.Delete(p.Context, templateID, userID)
}

func (r *Resolvers) createToken(p graphql.ResolveParams) (interface{}, error) {
	login, _ := p.Args["login"].(string)
	password, _ := p.Args["password"].(string)

	const rejected = "Unauthorized, wrong email/username or password!"

	user, err := r.users.FindByLogin(p.Context, login)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewCredentialError(rejected)
		}
		return nil, err
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, apperror.NewCredentialError(rejected)
	}

	signed, err := r.tokens.Sign(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to sign token", err)
	}
	return &Token{Token: signed}, nil
}

// resolveOwner resolves a fk_user relation through the request's batch
// loader. The returned thunk defers the lookup past the current resolver
// wave, which is what lets sibling relations share one query.
func (r *Resolvers) resolveOwner(p graphql.ResolveParams, ownerID int) (interface{}, error) {
	loader := LoaderFromContext(p.Context)
	if loader == nil {
		// No batch window (schema used outside the HTTP handler): fall
		// back to a direct lookup.
		return r.users.FindByID(p.Context, ownerID, RequestedFields(p))
	}
	return loader.Load(p.Context, ownerID, RequestedFields(p)), nil
}

func (r *Resolvers) profileOwner(p graphql.ResolveParams) (interface{}, error) {
	profile, ok := p.Source.(*profiles.Profile)
	if !ok {
		return nil, apperror.NewInternalError("unexpected source for profile owner", nil)
	}
	return r.resolveOwner(p, profile.FkUser)
}

func (r *Resolvers) templateOwner(p graphql.ResolveParams) (interface{}, error) {
	template, ok := p.Source.(*templates.Template)
	if !ok {
		return nil, apperror.NewInternalError("unexpected source for template owner", nil)
	}
	return r.resolveOwner(p, template.FkUser)
}
