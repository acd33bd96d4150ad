package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/user/templario-go/apperror"
)

var (
	alphanumPattern = regexp.MustCompile(`^[a-zA-Z0-9]*$`)
	// emailPattern accepts the usual local@domain.tld shape; it is a
	// plausibility check, not an RFC 5322 parser.
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// StringRule validates a single string argument. Checks run in a fixed
// order (required, min, max, alphanum, email) and every failing check
// contributes its own entry, so an empty required field with a minimum
// length reports both violations.
type StringRule struct {
	// Field is the wire name reported back to the client.
	Field string
	// Display is the human-facing name used inside messages.
	Display string

	Required bool
	Min      int
	Max      int
	Alphanum bool
	Email    bool
}

// Validate returns one entry per failed check, in check order. A nil result
// means the value passed.
func (r StringRule) Validate(value string) []apperror.FieldError {
	var fieldErrors []apperror.FieldError
	fail := func(method string, length int) {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			FieldNameError:    r.Field,
			FieldMessageError: composeMessage(method, r.Display, length),
		})
	}

	length := utf8.RuneCountInString(value)

	if r.Required && value == "" {
		fail(methodRequired, 0)
	}
	if r.Min > 0 && length < r.Min {
		fail(methodMin, r.Min)
	}
	if r.Max > 0 && length > r.Max {
		fail(methodMax, r.Max)
	}
	if r.Alphanum && !alphanumPattern.MatchString(value) {
		fail(methodAlphanum, 0)
	}
	if r.Email && value != "" && !emailPattern.MatchString(value) {
		fail(methodEmail, 0)
	}

	return fieldErrors
}

// Shared rule constructors. The same argument keeps the same constraints
// wherever it appears, so the tables below reuse these instead of spelling
// limits inline.

func idRule() StringRule {
	return StringRule{Field: "id", Display: "id", Required: true, Min: 1, Max: 24}
}

func emailRule() StringRule {
	return StringRule{Field: "email", Display: "e-mail", Required: true, Min: 6, Max: 64, Email: true}
}

func usernameRule() StringRule {
	return StringRule{Field: "username", Display: "nome de usuário", Required: true, Min: 6, Max: 32, Alphanum: true}
}

func passwordRule() StringRule {
	return StringRule{Field: "password", Display: "senha", Required: true, Min: 6, Max: 12}
}

func loginRule() StringRule {
	return StringRule{Field: "login", Display: "login", Required: true, Min: 6, Max: 64}
}

func profileNameRule() StringRule {
	return StringRule{Field: "name", Display: "nome", Required: true, Min: 1, Max: 64}
}

func templateDescriptionRule() StringRule {
	return StringRule{Field: "description", Display: "descrição", Required: true, Min: 1, Max: 512}
}
