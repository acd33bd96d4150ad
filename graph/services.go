package graph

import (
	"context"

	"github.com/user/templario-go/profiles"
	"github.com/user/templario-go/templates"
	"github.com/user/templario-go/users"
)

// The resolver layer talks to the feature services through these interfaces
// so the schema can be exercised against fakes in tests.

// UserService is the user operations surface the resolvers need.
type UserService interface {
	CreateWithProfile(ctx context.Context, input users.CreateInput) (*users.User, error)
	Update(ctx context.Context, userID int, input users.UpdateInput) (*users.User, error)
	UpdatePassword(ctx context.Context, userID int, password string) (bool, error)
	DeleteWithProfile(ctx context.Context, userID int) (bool, error)
	FindByID(ctx context.Context, userID int, fields []string) (*users.User, error)
	FindByLogin(ctx context.Context, login string) (*users.User, error)
	FindByIDs(ctx context.Context, ids []int, fields []string) (map[int]*users.User, error)
}

// ProfileService is the profile operations surface the resolvers need.
type ProfileService interface {
	FindByUser(ctx context.Context, userID int, fields []string) (*profiles.Profile, error)
	UpdateByUser(ctx context.Context, userID int, input profiles.UpdateInput) (*profiles.Profile, error)
}

// TemplateService is the template operations surface the resolvers need.
type TemplateService interface {
	FindByID(ctx context.Context, templateID int, fields []string) (*templates.Template, error)
	List(ctx context.Context, first, offset int, fields []string) ([]*templates.Template, error)
	Create(ctx context.Context, userID int, input templates.CreateInput) (*templates.Template, error)
	Update(ctx context.Context, templateID, userID int, input templates.UpdateInput) (*templates.Template, error)
	Delete(ctx context.Context, templateID, userID int) (bool, error)
}
