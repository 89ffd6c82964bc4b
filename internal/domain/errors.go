package domain

import "errors"

var (
	// ErrNotFound is returned when a user or post does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique email or title is already taken.
	ErrConflict = errors.New("conflict")
	// ErrForbidden is returned when the caller is not allowed to perform an action.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated is returned when an action needs a logged in user.
	ErrUnauthenticated = errors.New("unauthenticated")
)
