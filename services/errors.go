package services

import "errors"

// Shared sentinel errors, mapped to HTTP statuses in the handlers layer.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules
	ErrValidationFailed = errors.New("validation failed")

	// Authentication
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email address is already in use")
	ErrPasswordTooShort       = errors.New("password must be at least 6 characters")
	ErrRecentLoginRequired    = errors.New("this operation requires recent authentication")

	// Entity-specific not-found (more context than the generic one)
	ErrUserNotFound    = errors.New("user not found")
	ErrTeamNotFound    = errors.New("team not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrExpenseNotFound = errors.New("expense not found")
	ErrPaymentNotFound = errors.New("payment not found")

	ErrUploadsDisabled = errors.New("file uploads are not configured")
)

// ValidationError carries per-field messages for inline display.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
