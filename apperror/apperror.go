// Package apperror defines a centralized system for application-specific errors.
// Every layer of the application returns *AppError values (possibly wrapping an
// underlying error), so handlers and the GraphQL gateway can map failures to a
// consistent client-facing payload without string matching.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType is an enumeration for different categories of application errors.
type ErrorType int

const (
	// UnknownError is for unspecified errors
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database
	DatabaseError
	// ConfigError represents an error related to application configuration
	ConfigError
	// AuthError represents an authentication error (no or invalid credential)
	AuthError
	// UnauthorizedError represents an authorization error (valid principal,
	// not the owner of the resource)
	UnauthorizedError
	// CredentialError represents a rejected login attempt (wrong identifier
	// or password); deliberately indistinguishable between the two cases
	CredentialError
	// NotFoundError represents a resource not found error
	NotFoundError
	// ValidationError represents an input validation error; it carries a list
	// of per-field violations
	ValidationError
	// BadRequestError represents a generic bad request
	BadRequestError
	// InternalError represents a generic internal server error
	InternalError
	// MigrationError represents an error during database migrations
	MigrationError
	// ConflictError represents a conflict, e.g., resource already exists
	ConflictError
)

// FieldError describes a single violated constraint on a single input field.
// A field violating two constraints produces two entries. The JSON key names
// are part of the client contract and must not change.
type FieldError struct {
	FieldNameError    string `json:"fieldNameError"`
	FieldMessageError string `json:"fieldMessageError"`
}

// AppError is the custom error type for the application.
// It allows wrapping an underlying error (`Err`) for more detailed debugging,
// and, for validation failures, carries the structured per-field messages.
type AppError struct {
	Type    ErrorType
	Message string
	Fields  []FieldError // populated for ValidationError only
	Err     error        // underlying error
}

// Error returns the string representation, satisfying the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error, enabling errors.Is / errors.As on the
// wrapped chain.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns a stable machine-readable tag for the error type, surfaced in
// the GraphQL error extensions.
func (e *AppError) Code() string {
	switch e.Type {
	case DatabaseError:
		return "DATABASE_ERROR"
	case ConfigError:
		return "CONFIG_ERROR"
	case AuthError:
		return "UNAUTHENTICATED"
	case UnauthorizedError:
		return "UNAUTHORIZED"
	case CredentialError:
		return "CREDENTIAL_REJECTED"
	case NotFoundError:
		return "NOT_FOUND"
	case ValidationError:
		return "VALIDATION_FAILED"
	case BadRequestError:
		return "BAD_REQUEST"
	case MigrationError:
		return "MIGRATION_ERROR"
	case ConflictError:
		return "CONFLICT"
	case InternalError:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// StatusCode returns the HTTP status code appropriate for the error type.
// The GraphQL endpoint itself answers 200 for executed operations; this
// mapping is used where an error surfaces before execution starts.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError, CredentialError:
		return http.StatusUnauthorized
	case UnauthorizedError:
		// 403 for authorization (valid token, no permission), 401 for
		// authentication (no/invalid token).
		return http.StatusForbidden
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. This is the generic constructor; the
// typed constructors below are preferred at call sites.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError (for authentication issues)
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewUnauthorizedError creates a new UnauthorizedError (for authorization issues)
func NewUnauthorizedError(message string, underlyingError error) *AppError {
	return NewAppError(UnauthorizedError, message, underlyingError)
}

// NewCredentialError creates a new CredentialError (rejected login)
func NewCredentialError(message string) *AppError {
	return NewAppError(CredentialError, message, nil)
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a ValidationError carrying structured per-field
// messages. The Message is a summary; clients consume Fields.
func NewValidationError(fields []FieldError) *AppError {
	return &AppError{
		Type:    ValidationError,
		Message: "validation failed",
		Fields:  fields,
	}
}

// NewBadRequestError creates a new BadRequestError
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewMigrationError creates a new MigrationError
func NewMigrationError(message string, underlyingError error) *AppError {
	return NewAppError(MigrationError, message, underlyingError)
}

// NewConflictError creates a new ConflictError
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// ErrorResponse represents a generic error response payload for API clients.
type ErrorResponse struct {
	Error string `json:"error" example:"A description of the error"`
}

// ToResponse converts an AppError to an ErrorResponse suitable for plain HTTP
// error replies (only the user-facing Message, never the wrapped Err details).
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message}
}

// FromError attempts to convert a generic error to an *AppError.
// It returns the *AppError and true if successful, otherwise nil and false.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound checks if an error is a NotFound error
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError checks if an error is an AuthError (authentication problem)
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsUnauthorizedError checks if an error is an UnauthorizedError (authorization problem)
func IsUnauthorizedError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == UnauthorizedError
}

// IsCredentialError checks if an error is a CredentialError (rejected login)
func IsCredentialError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == CredentialError
}

// IsValidationError checks if an error is a Validation error
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflictError checks if an error is a Conflict error
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}
