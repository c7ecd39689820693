package engine

import (
	"errors"
	"fmt"
)

// Code is the numeric error code reported at the process boundary. The
// namespace is private to this engine; collaborators treat the numbers
// as opaque.
type Code int

const (
	CodeUnknownCommand  Code = 1
	CodeMissingArgument Code = 2
	CodeMalformed       Code = 3
	CodeUnsupported     Code = 4

	CodeLaunchTimeout     Code = 10
	CodeUnexpectedSurface Code = 11
	CodeWindowNotFound    Code = 12
	CodeKeyColumnNotFound Code = 13
	CodePromptTimeout     Code = 14
	CodeMenuNotReady      Code = 15
	CodeTableNotFound     Code = 16
	CodePromptNotFound    Code = 17
	CodeDriverFailure     Code = 18

	CodeInvalidChoice   Code = 20
	CodeAppNotAvailable Code = 21
)

// Error is a structured engine failure: a stable numeric code plus a
// human-readable message.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// Errorf builds an Error with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the structured code from err, defaulting to
// CodeDriverFailure for plain errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeDriverFailure
}
