package services

import "errors"

// Error taxonomy surfaced to the transport layer. Controllers map these
// onto HTTP statuses; nothing here is retried.
var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSelfRequest        = errors.New("cannot send request to yourself")
	ErrDuplicateRequest   = errors.New("request already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidState       = errors.New("invalid state")
)
