// Package service implements the application logic between the HTTP
// handlers and the store.
package service

import "errors"

var (
	// ErrForbidden: the acting user is not allowed to touch the record.
	ErrForbidden = errors.New("not allowed")

	// ErrValidation wraps caller mistakes that should map to a 400.
	ErrValidation = errors.New("invalid request")

	// ErrNothingToSettle: a settlement run produced no entries because no
	// eligible participant owes anything.
	ErrNothingToSettle = errors.New("no amounts to settle")
)

func validationf(msg string) error {
	return &validationError{msg: msg}
}

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }
