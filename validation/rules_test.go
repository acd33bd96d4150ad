package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/templario-go/apperror"
)

func TestStringRuleValidOK(t *testing.T) {
	assert.Nil(t, usernameRule().Validate("validuser1"))
	assert.Nil(t, emailRule().Validate("someone@example.com"))
	assert.Nil(t, passwordRule().Validate("secret1"))
	assert.Nil(t, templateDescriptionRule().Validate("a"))
}

func TestStringRuleEmptyReportsRequiredAndMin(t *testing.T) {
	got := passwordRule().Validate("")

	require.Len(t, got, 2)
	assert.Equal(t, apperror.FieldError{
		FieldNameError:    "password",
		FieldMessageError: "O campo senha não pode estar vazio.",
	}, got[0])
	assert.Equal(t, apperror.FieldError{
		FieldNameError:    "password",
		FieldMessageError: "O campo senha não atinge o tamanho mínimo de 6 caracteres.",
	}, got[1])
}

func TestStringRuleCheckOrder(t *testing.T) {
	// Too short and not alphanumeric at once: min before format.
	got := usernameRule().Validate("a b")

	require.Len(t, got, 2)
	assert.Equal(t, "O campo nome de usuário não atinge o tamanho mínimo de 6 caracteres.", got[0].FieldMessageError)
	assert.Equal(t, "O campo nome de usuário permite apenas caracteres alfanuméricos sem espaço.", got[1].FieldMessageError)
}

func TestStringRuleMax(t *testing.T) {
	got := passwordRule().Validate(strings.Repeat("x", 13))

	require.Len(t, got, 1)
	assert.Equal(t, "O campo senha excede o tamanho limite de 12 caracteres.", got[0].FieldMessageError)
}

func TestStringRuleEmailFormat(t *testing.T) {
	got := emailRule().Validate("not-an-email")

	require.Len(t, got, 1)
	assert.Equal(t, apperror.FieldError{
		FieldNameError:    "email",
		FieldMessageError: "O campo e-mail tem formato inválido.",
	}, got[0])
}

func TestStringRuleCountsRunesNotBytes(t *testing.T) {
	// "descrição" style values: accented characters count once.
	got := profileNameRule().Validate(strings.Repeat("ç", 64))
	assert.Nil(t, got)
}

func TestSchemaSetValidateCollectsAcrossFields(t *testing.T) {
	set := NewSchemaSet()

	got := set.Validate("createUser", map[string]interface{}{
		"input": map[string]interface{}{
			"username": "ok_user!",
			"email":    "bad",
			"password": "longenough-pass",
		},
	})

	// username: alphanum; email: min + format; password: max. Field order
	// follows the table: username, email, password.
	require.Len(t, got, 4)
	assert.Equal(t, "username", got[0].FieldNameError)
	assert.Equal(t, "email", got[1].FieldNameError)
	assert.Equal(t, "email", got[2].FieldNameError)
	assert.Equal(t, "password", got[3].FieldNameError)
}

func TestSchemaSetValidateMissingInput(t *testing.T) {
	set := NewSchemaSet()

	got := set.Validate("updateCurrentProfile", map[string]interface{}{})

	require.Len(t, got, 2)
	assert.Equal(t, "O campo nome não pode estar vazio.", got[0].FieldMessageError)
	assert.Equal(t, "O campo nome não atinge o tamanho mínimo de 1 caracteres.", got[1].FieldMessageError)
}

func TestSchemaSetValidateUnknownOperation(t *testing.T) {
	set := NewSchemaSet()
	assert.Nil(t, set.Validate("currentUser", map[string]interface{}{}))
}

func TestSchemaSetValidateNumericID(t *testing.T) {
	set := NewSchemaSet()
	assert.Nil(t, set.Validate("template", map[string]interface{}{"id": 42}))
}
