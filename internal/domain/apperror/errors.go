// Package apperror holds the error taxonomy shared by the store, session and
// HTTP layers. The HTTP layer maps these to status codes; anything else is
// treated as an infrastructure failure and answered with a generic 500.
package apperror

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateKey       = errors.New("duplicate key")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDestroy            = errors.New("session destroy failed")
)

// ValidationError carries the message of the first rule a payload violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
