package services

import "errors"

// Error variants returned by the service layer. Handlers map these onto
// HTTP status codes; everything else surfaces as an internal failure.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
)
