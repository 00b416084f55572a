package domain

import (
	"errors"
	"fmt"
)

// ValidationError marks a request rejected before any write. Handlers map
// these to 400 responses.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf builds a ValidationError with a formatted message.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrInsufficientStock is returned when a sale asks for more units than
// the matching batches hold. It counts as a validation rejection.
var ErrInsufficientStock = &ValidationError{msg: "insufficient stock"}

// ErrNotFound is returned by repositories for point reads that match no row.
var ErrNotFound = errors.New("not found")
