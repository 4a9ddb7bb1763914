// Package validation holds the error type reported for rejected user input.
package validation

import (
	"errors"
	"fmt"
)

// Error reports a missing or malformed field. Operations that return it have
// not written anything.
type Error struct {
	Field   string
	Message string
}

func New(field, message string) *Error {
	return &Error{Field: field, Message: message}
}

func Newf(field, format string, args ...any) *Error {
	return &Error{Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return e.Field + ": " + e.Message
}

// As reports whether err is or wraps a validation error.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}

	return nil, false
}
