package users

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectColumnsCanonicalOrder(t *testing.T) {
	// Request order does not matter; the column list follows the table's
	// canonical order so identical requests build identical SQL.
	got := projectColumns([]string{"updatedAt", "email", "username"}, "id")
	assert.Equal(t, []string{"id", "username", "email", "updated_at"}, got)
}

func TestProjectColumnsIgnoresUnknownFields(t *testing.T) {
	got := projectColumns([]string{"__typename", "fk_user", "username"}, "id")
	assert.Equal(t, []string{"id", "username"}, got)
}

func TestProjectColumnsDeduplicatesKeep(t *testing.T) {
	got := projectColumns([]string{"id", "id"}, "id")
	assert.Equal(t, []string{"id"}, got)
}

func TestScanTargetsMatchColumns(t *testing.T) {
	u := &User{}
	cols := []string{"id", "email", "created_at"}

	targets := scanTargets(u, cols)
	require.Len(t, targets, len(cols))

	*targets[0].(*int) = 7
	*targets[1].(*string) = "x@example.com"
	*targets[2].(*time.Time) = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 7, u.ID)
	assert.Equal(t, "x@example.com", u.Email)
	assert.Equal(t, 2024, u.CreatedAt.Year())
}
