// Package users implements user account management: creation (with the
// companion profile), updates, password changes, login lookup and the bulk
// lookup used by the per-request batch loader.
package users

import "time"

// User represents a user account as stored in the database.
// Password holds the bcrypt hash, never the plaintext; the `json:"-"` tag
// keeps it out of any direct JSON serialization.
type User struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// columnOrder is the canonical select order for projected queries; projections
// are resolved against it so the same requested set always produces the same
// column list.
var columnOrder = []string{"id", "username", "email", "password", "created_at", "updated_at"}

// columnByField maps GraphQL field names to database columns. Fields absent
// from this map (relation fields, __typename) are ignored by projections.
var columnByField = map[string]string{
	"id":        "id",
	"username":  "username",
	"email":     "email",
	"password":  "password",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// projectColumns resolves a requested-fields projection to database columns:
// requested scalar fields mapped through columnByField, unioned with the keep
// set, de-duplicated, in canonical order.
func projectColumns(fields []string, keep ...string) []string {
	selected := make(map[string]bool, len(fields)+len(keep))
	for _, f := range fields {
		if col, ok := columnByField[f]; ok {
			selected[col] = true
		}
	}
	for _, col := range keep {
		selected[col] = true
	}

	cols := make([]string, 0, len(selected))
	for _, col := range columnOrder {
		if selected[col] {
			cols = append(cols, col)
		}
	}
	return cols
}

// scanTargets returns scan destinations into u matching the column list.
func scanTargets(u *User, cols []string) []interface{} {
	targets := make([]interface{}, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			targets[i] = &u.ID
		case "username":
			targets[i] = &u.Username
		case "email":
			targets[i] = &u.Email
		case "password":
			targets[i] = &u.Password
		case "created_at":
			targets[i] = &u.CreatedAt
		case "updated_at":
			targets[i] = &u.UpdatedAt
		}
	}
	return targets
}
