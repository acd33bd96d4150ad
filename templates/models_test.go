package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectColumnsKeepsForeignKey(t *testing.T) {
	// The relation resolver needs fk_user even when the client did not ask
	// for it, so the services keep it alongside id.
	got := projectColumns([]string{"description"}, "id", "fk_user")
	assert.Equal(t, []string{"id", "description", "fk_user"}, got)
}

func TestProjectColumnsMapsTimestampFields(t *testing.T) {
	got := projectColumns([]string{"createdAt", "updatedAt"}, "id")
	assert.Equal(t, []string{"id", "created_at", "updated_at"}, got)
}
