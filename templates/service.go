package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/templario-go/apperror"
)

// Service provides template operations backed by PostgreSQL.
type Service struct {
	db *pgxpool.Pool
}

// NewService creates a new template Service.
func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// CreateInput carries the attributes for a new template.
type CreateInput struct {
	Description string
}

// UpdateInput carries the mutable template attributes.
type UpdateInput struct {
	Description string
}

// FindByID fetches a single template, selecting only the projected columns
// plus id and fk_user.
func (s *Service) FindByID(ctx context.Context, templateID int, fields []string) (*Template, error) {
	cols := projectColumns(fields, "id", "fk_user")
	template := &Template{}

	query := fmt.Sprintf(`SELECT %s FROM templates WHERE id = $1`, strings.Join(cols, ", "))
	err := s.db.QueryRow(ctx, query, templateID).Scan(scanTargets(template, cols)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Template with id %d not found", templateID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get template", err)
	}

	return template, nil
}

// List returns a page of templates ordered by id. first caps the page size
// and offset skips past earlier rows.
func (s *Service) List(ctx context.Context, first, offset int, fields []string) ([]*Template, error) {
	cols := projectColumns(fields, "id", "fk_user")
	query := fmt.Sprintf(
		`SELECT %s FROM templates ORDER BY id LIMIT $1 OFFSET $2`,
		strings.Join(cols, ", "),
	)

	rows, err := s.db.Query(ctx, query, first, offset)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list templates", err)
	}
	defer rows.Close()

	templates := make([]*Template, 0, first)
	for rows.Next() {
		template := &Template{}
		if err := rows.Scan(scanTargets(template, cols)...); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan template", err)
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list templates", err)
	}

	return templates, nil
}

// Create inserts a template owned by the given user.
func (s *Service) Create(ctx context.Context, userID int, input CreateInput) (*Template, error) {
	template := &Template{
		Description: input.Description,
		FkUser:      userID,
	}

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`INSERT INTO templates (description, fk_user)
			 VALUES ($1, $2)
			 RETURNING id, created_at, updated_at`,
			template.Description, template.FkUser,
		).Scan(&template.ID, &template.CreatedAt, &template.UpdatedAt)
	})
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create template", err)
	}

	return template, nil
}

// Update rewrites a template's description. The template must exist and must
// belong to the caller; both checks run inside the same transaction as the
// write.
func (s *Service) Update(ctx context.Context, templateID, userID int, input UpdateInput) (*Template, error) {
	template := &Template{ID: templateID, FkUser: userID}

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.checkOwnership(ctx, tx, templateID, userID); err != nil {
			return err
		}

		return tx.QueryRow(ctx,
			`UPDATE templates SET description = $1, updated_at = now()
			 WHERE id = $2
			 RETURNING description, created_at, updated_at`,
			input.Description, templateID,
		).Scan(&template.Description, &template.CreatedAt, &template.UpdatedAt)
	})
	if err != nil {
		if _, ok := apperror.FromError(err); ok {
			return nil, err
		}
		return nil, apperror.NewDatabaseError("failed to update template", err)
	}

	return template, nil
}

// Delete removes a template. As with Update, only the owner may delete it.
func (s *Service) Delete(ctx context.Context, templateID, userID int) (bool, error) {
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		if err := s.checkOwnership(ctx, tx, templateID, userID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `DELETE FROM templates WHERE id = $1`, templateID)
		return err
	})
	if err != nil {
		if _, ok := apperror.FromError(err); ok {
			return false, err
		}
		return false, apperror.NewDatabaseError("failed to delete template", err)
	}

	return true, nil
}

// checkOwnership verifies the template exists and is owned by userID.
func (s *Service) checkOwnership(ctx context.Context, tx pgx.Tx, templateID, userID int) error {
	var owner int
	err := tx.QueryRow(ctx,
		`SELECT fk_user FROM templates WHERE id = $1`, templateID,
	).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFoundError(fmt.Sprintf("Template with id %d not found", templateID), nil)
		}
		return err
	}
	if owner != userID {
		return apperror.NewUnauthorizedError("Unauthorized! You can only edit Template by yourself", nil)
	}
	return nil
}
