package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails field
// validation (e.g. missing required field, negative price).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrBusinessRule is returned when an operation is structurally valid but
// forbidden by a domain rule (currently only: renewing a single-ride ticket).
// Handlers should map this to HTTP 400 Bad Request.
var ErrBusinessRule = errors.New("business rule violation")

// NotFoundError is an ErrNotFound that names the resource and identifier
// that failed to resolve, so callers can report exactly which reference was
// missing (e.g. the first missing stop in a route replace).
// It unwraps to ErrNotFound, so errors.Is(err, ErrNotFound) keeps working.
type NotFoundError struct {
	Resource string // e.g. "bus stop", "ticket category"
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %s", e.Resource, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }
