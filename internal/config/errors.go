package config

import (
	"errors"
	"fmt"
)

// ErrInvalid marks every build-time configuration error.
var ErrInvalid = errors.New("invalid configuration")

// Error names the piece of configuration that is wrong.
type Error struct {
	Subject string
	Reason  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Subject, e.Reason)
}

func (e *Error) Unwrap() error { return ErrInvalid }

// Invalid builds an *Error.
func Invalid(subject, format string, args ...any) error {
	return &Error{Subject: subject, Reason: fmt.Sprintf(format, args...)}
}
