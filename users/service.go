package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/templario-go/apperror"
	"github.com/user/templario-go/auth"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// Service provides user account operations backed by PostgreSQL.
type Service struct {
	db *pgxpool.Pool
}

// NewService creates a new user Service.
func NewService(db *pgxpool.Pool) *Service {
	return &Service{db: db}
}

// CreateInput carries the attributes for a new user account.
type CreateInput struct {
	Username string
	Email    string
	Password string
}

// UpdateInput carries the mutable account attributes.
type UpdateInput struct {
	Username string
	Email    string
}

// CreateWithProfile creates a user and its companion profile inside a single
// transaction; if the profile insert fails the user insert is rolled back too.
// The password is replaced with a bcrypt hash before it reaches the database,
// and the profile name starts out as the username.
func (s *Service) CreateWithProfile(ctx context.Context, input CreateInput) (*User, error) {
	hashed, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		Username: input.Username,
		Email:    strings.ToLower(input.Email),
		Password: hashed,
	}

	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO users (username, email, password)
			 VALUES ($1, $2, $3)
			 RETURNING id, created_at, updated_at`,
			user.Username, user.Email, user.Password,
		).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO profiles (name, fk_user) VALUES ($1, $2)`,
			user.Username, user.ID,
		)
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, apperror.NewConflictError("username already exists", nil)
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, apperror.NewConflictError("email already exists", nil)
			}
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}

	return user, nil
}

// Update changes the username and email of an existing user.
func (s *Service) Update(ctx context.Context, userID int, input UpdateInput) (*User, error) {
	user := &User{ID: userID}

	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx,
			`UPDATE users
			 SET username = $1, email = $2, updated_at = now()
			 WHERE id = $3
			 RETURNING username, email, created_at, updated_at`,
			input.Username, strings.ToLower(input.Email), userID,
		).Scan(&user.Username, &user.Email, &user.CreatedAt, &user.UpdatedAt)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("User with id %d not found", userID), nil)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, apperror.NewConflictError("username already exists", nil)
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, apperror.NewConflictError("email already exists", nil)
			}
		}
		return nil, apperror.NewDatabaseError("failed to update user", err)
	}

	return user, nil
}

// UpdatePassword replaces the user's password with a fresh bcrypt hash.
func (s *Service) UpdatePassword(ctx context.Context, userID int, password string) (bool, error) {
	hashed, err := auth.HashPassword(password)
	if err != nil {
		return false, apperror.NewInternalError("failed to hash password", err)
	}

	err = pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE users SET password = $1, updated_at = now() WHERE id = $2`,
			hashed, userID,
		)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperror.NewNotFoundError(fmt.Sprintf("User with id %d not found", userID), nil)
		}
		return nil
	})
	if err != nil {
		if _, ok := apperror.FromError(err); ok {
			return false, err
		}
		return false, apperror.NewDatabaseError("failed to update password", err)
	}

	return true, nil
}

// DeleteWithProfile removes the user's profile and then the user inside one
// transaction. A user without a profile fails before anything is deleted, and
// a failure on either delete rolls back both.
func (s *Service) DeleteWithProfile(ctx context.Context, userID int) (bool, error) {
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		var profileID int
		err := tx.QueryRow(ctx,
			`SELECT id FROM profiles WHERE fk_user = $1`, userID,
		).Scan(&profileID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperror.NewNotFoundError(fmt.Sprintf("User with id %d not found in profiles", userID), nil)
			}
			return err
		}

		if _, err := tx.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, profileID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return apperror.NewNotFoundError(fmt.Sprintf("User with id %d not found", userID), nil)
		}
		return nil
	})
	if err != nil {
		if _, ok := apperror.FromError(err); ok {
			return false, err
		}
		return false, apperror.NewDatabaseError("failed to delete user", err)
	}

	return true, nil
}

// FindByID fetches a single user, selecting only the projected columns plus
// the always-required id.
func (s *Service) FindByID(ctx context.Context, userID int, fields []string) (*User, error) {
	cols := projectColumns(fields, "id")
	user := &User{}

	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, strings.Join(cols, ", "))
	err := s.db.QueryRow(ctx, query, userID).Scan(scanTargets(user, cols)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("User with id %d not found", userID), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user", err)
	}

	return user, nil
}

// FindByLogin fetches a user by username or email in a single query; the
// login mutation accepts either. Only id and password hash are selected.
func (s *Service) FindByLogin(ctx context.Context, login string) (*User, error) {
	user := &User{}
	err := s.db.QueryRow(ctx,
		`SELECT id, password FROM users WHERE email = $1 OR username = $2`,
		strings.ToLower(login), login,
	).Scan(&user.ID, &user.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user %q not found", login), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by login", err)
	}
	return user, nil
}

// FindByIDs is the bulk lookup behind the batch loader: one query for the
// whole unique key set, results keyed by id. Keys with no matching row are
// simply absent from the map; the loader turns those into per-caller
// not-found results.
func (s *Service) FindByIDs(ctx context.Context, ids []int, fields []string) (map[int]*User, error) {
	if len(ids) == 0 {
		return map[int]*User{}, nil
	}

	cols := projectColumns(fields, "id")
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = ANY($1)`, strings.Join(cols, ", "))

	rows, err := s.db.Query(ctx, query, ids)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to batch load users", err)
	}
	defer rows.Close()

	found := make(map[int]*User, len(ids))
	for rows.Next() {
		user := &User{}
		if err := rows.Scan(scanTargets(user, cols)...); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan batched user", err)
		}
		found[user.ID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to batch load users", err)
	}

	return found, nil
}
