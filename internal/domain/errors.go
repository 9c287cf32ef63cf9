package domain

import "errors"

// Common domain errors
var (
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateKey        = errors.New("DUPLICATION_KEY")
	ErrForeignKey          = errors.New("referenced entity does not exist")
	ErrNotNull             = errors.New("required column is missing")
	ErrValidation          = errors.New("validation failed")
	ErrEmailTaken          = errors.New("email already registered")
	ErrAccountNotActivated = errors.New("account not activated")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrLoginBlocked        = errors.New("too many failed login attempts")
	ErrForbidden           = errors.New("forbidden")
	ErrStorageDisabled     = errors.New("object storage is not configured")
)

// ValidationError carries a caller-facing message and matches ErrValidation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}
