package backend

import "github.com/pkg/errors"

// Failure kinds callers are expected to branch on with errors.Is.
var (
	// ErrAuthenticationFailed is returned when the platform API rejects
	// the submitted credentials.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrSessionExpired is returned when the platform API rejects the
	// access token of an already established session.
	ErrSessionExpired = errors.New("session expired")

	// ErrForbidden is returned when the platform API recognized the
	// access token but denied the operation. The session stays valid.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when the platform API could not be
	// reached at all. It is never conflated with bad credentials.
	ErrUnavailable = errors.New("backend unavailable")
)
