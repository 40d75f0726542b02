package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrIllegalMove        = errors.New("illegal move")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrUnauthorized       = errors.New("unauthorized")
)
