package domain

import "errors"

// Sentinel errors shared across the service. Handlers translate these into
// HTTP status codes; everything else is treated as a fatal request error.
var (
	// ErrUnauthorized means the operation requires an authenticated viewer.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound means the referenced user or bookmark does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned on login failure. It deliberately does
	// not distinguish unknown-username from wrong-password.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError carries a user-facing message for bad form input.
// It renders inline in the form rather than as an HTTP error.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with the given message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
