// Package templates implements the template documents users own and manage.
package templates

import "time"

// Template represents a template row. FkUser is the owning user's id.
type Template struct {
	ID          int       `json:"id"`
	Description string    `json:"description"`
	FkUser      int       `json:"fk_user"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var columnOrder = []string{"id", "description", "fk_user", "created_at", "updated_at"}

var columnByField = map[string]string{
	"id":          "id",
	"description": "description",
	"fk_user":     "fk_user",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
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

func scanTargets(t *Template, cols []string) []interface{} {
	targets := make([]interface{}, len(cols))
	for i, col := range cols {
		switch col {
		case "id":
			targets[i] = &t.ID
		case "description":
			targets[i] = &t.Description
		case "fk_user":
			targets[i] = &t.FkUser
		case "created_at":
			targets[i] = &t.CreatedAt
		case "updated_at":
			targets[i] = &t.UpdatedAt
		}
	}
	return targets
}
