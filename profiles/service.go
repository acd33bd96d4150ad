package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/templario-go/apperror"
)

// Service provides profile operations backed by PostgreSQL.
type Service struct {
	db *pgxpool.Pool
}

// NewService creates a new profile Service.
func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// UpdateInput carries the mutable profile attributes.
type UpdateInput struct {
	Name string
}

// FindByUser fetches the profile owned by the given user, selecting only the
// projected columns plus id and fk_user (fk_user feeds the relation resolver).
func (s *Service) FindByUser(ctx context.Context, userID int, fields []string) (*Profile, error) {
	cols := projectColumns(fields, "id", "fk_user")
	profile := &Profile{}

	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE fk_user = $1`, strings.Join(cols, ", "))
	err := s.db.QueryRow(ctx, query, userID).Scan(scanTargets(profile, cols)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("User Profile with id %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get profile", err)
	}

	return profile, nil
}

// UpdateByUser renames the caller's profile. Ownership is checked inside the
// transaction before the write: a profile belonging to someone else yields an
// authorization error, not a silent no-op.
func (s *Service) UpdateByUser(ctx context.Context, userID int, input UpdateInput) (*Profile, error) {
	profile := &Profile{FkUser: userID}

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		var owner int
		err := tx.QueryRow(ctx,
			`SELECT id, fk_user FROM profiles WHERE fk_user = $1`, userID,
		).Scan(&profile.ID, &owner)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperror.NewNotFoundError(fmt.Sprintf("User Profile with id %d not found", userID), nil)
			}
			return err
		}
		if owner != userID {
			return apperror.NewUnauthorizedError("Unauthorized! You can only edit Profile by yourself", nil)
		}

		return tx.QueryRow(ctx,
			`UPDATE profiles SET name = $1, updated_at = now()
			 WHERE id = $2
			 RETURNING name, created_at, updated_at`,
			input.Name, profile.ID,
		).Scan(&profile.Name, &profile.CreatedAt, &profile.UpdatedAt)
	})
	if err != nil {
		if _, ok := apperror.FromError(err); ok {
			return nil, err
		}
		return nil, apperror.NewDatabaseError("failed to update profile", err)
	}

	return profile, nil
}
