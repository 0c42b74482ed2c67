package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")

	// Workflow errors
	ErrInvalidState = errors.New("transition not allowed from current status")

	// Versioning errors
	ErrInvalidReference = errors.New("version does not belong to the given content")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
