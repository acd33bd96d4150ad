// Package validation implements the declarative argument validation applied
// by the validation resolver stage. Each operation has an immutable rule
// table built at startup; validating collects every violation for every
// field, in rule order, instead of stopping at the first.
package validation

import "fmt"

// Rule method identifiers, used both for message composition and for
// ordering the checks within a field.
const (
	methodRequired = "required"
	methodMin      = "min"
	methodMax      = "max"
	methodAlphanum = "alphanum"
	methodEmail    = "email"
)

// composeMessage renders the human-facing message for one failed check.
// Messages are in Portuguese and address the field by its display name
// ("e-mail", "senha"), not its wire name.
func composeMessage(method, display string, length int) string {
	switch method {
	case methodRequired:
		return fmt.Sprintf("O campo %s não pode estar vazio.", display)
	case methodMin:
		return fmt.Sprintf("O campo %s não atinge o tamanho mínimo de %d caracteres.", display, length)
	case methodMax:
		return fmt.Sprintf("O campo %s excede o tamanho limite de %d caracteres.", display, length)
	case methodAlphanum:
		return fmt.Sprintf("O campo %s permite apenas caracteres alfanuméricos sem espaço.", display)
	case methodEmail:
		return fmt.Sprintf("O campo %s tem formato inválido.", display)
	}
	return "Erro de validação sem mensagem cadastrada"
}
