// Package profiles implements the user profile attached 1:1 to every account.
// Profiles are created and deleted together with their owning user; this
// package only reads and updates them.
package profiles

import "time"

// Profile represents a user profile row. FkUser is the owning user's id.
type Profile struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	FkUser    int       `json:"fk_user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var columnOrder = []string{"id", "name", "fk_user", "created_at", "updated_at"}

// columnByField maps GraphQL field names to database columns. The fk_user
// relation field maps to the foreign key column so the relation resolver can
// batch-load the owner from the already-fetched row.
var columnByField = map[string]string{
	"id":        "id",
	"name":      "name",
	"fk_user":   "fk_user",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

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

func scanTargets(p *Profile, cols []string) []interface{} {
	targets := make([]interface{}, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			targets[i] = &p.ID
		case "name":
			targets[i] = &p.Name
		case "fk_user":
			targets[i] = &p.FkUser
		case "created_at":
			targets[i] = &p.CreatedAt
		case "updated_at":
			targets[i] = &p.UpdatedAt
		}
	}
	return targets
}
