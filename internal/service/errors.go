package service

import (
	"errors"
	"fmt"
)

// Domain error kinds. The HTTP layer maps them with errors.Is:
// ErrBadRequest -> 400, ErrNotFound -> 404, ErrConflict -> 409.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

// Error pairs a user-facing message with one of the kinds above.
type Error struct {
	kind    error
	message string
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.kind }

// BadRequestf, NotFoundf and Conflictf build user-facing errors of the
// matching kind.
func BadRequestf(format string, args ...interface{}) error {
	return &Error{kind: ErrBadRequest, message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) error {
	return &Error{kind: ErrNotFound, message: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...interface{}) error {
	return &Error{kind: ErrConflict, message: fmt.Sprintf(format, args...)}
}
