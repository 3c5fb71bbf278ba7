// Package apperr defines the error kinds used across the bot. Handlers
// inspect the kind at the boundary to decide what the user should see;
// the underlying cause is only ever logged.
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds for the application.
const (
	KindUnknown    = "UNKNOWN"
	KindNetwork    = "NETWORK"
	KindAPIFormat  = "API_FORMAT"
	KindValidation = "VALIDATION"
	KindArithmetic = "ARITHMETIC"
)

// Error is an application error carrying a kind tag and an optional cause.
type Error struct {
	kind    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

func (e *Error) Kind() string {
	return e.kind
}

func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the kind tag of err, or KindUnknown if err is not an
// application error.
func Kind(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindUnknown
}

// IsKind reports whether err carries the given kind tag.
func IsKind(err error, kind string) bool {
	return Kind(err) == kind
}

// NewNetworkError wraps a transport or connection failure to an external API.
func NewNetworkError(message string, cause error) error {
	return &Error{kind: KindNetwork, message: message, err: cause}
}

// NewAPIFormatError wraps an unexpected or malformed response from an
// external API, including responses missing an expected field.
func NewAPIFormatError(message string, cause error) error {
	return &Error{kind: KindAPIFormat, message: message, err: cause}
}

// NewValidationError marks a missing or malformed command argument.
func NewValidationError(message string) error {
	return &Error{kind: KindValidation, message: message}
}

// NewArithmeticError marks a computation that cannot be performed, such as
// a conversion at a zero price.
func NewArithmeticError(message string) error {
	return &Error{kind: KindArithmetic, message: message}
}
