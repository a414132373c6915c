// Package apperr defines the error taxonomy shared across services,
// repositories and HTTP handlers.
package apperr

import "errors"

var (
	// ErrNotFound indicates a missing note, blob or user record.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a duplicate registration.
	ErrConflict = errors.New("already exists")

	// ErrUnauthorized indicates bad credentials or a failed
	// identity-token verification.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an attempt to access another user's notes.
	ErrForbidden = errors.New("forbidden")

	// ErrService indicates a collaborator call failed or timed out.
	ErrService = errors.New("service unavailable")

	// ErrMalformedInput indicates a missing required field or an
	// unparseable payload.
	ErrMalformedInput = errors.New("malformed input")
)
