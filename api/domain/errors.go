package domain

import "errors"

var (
	// ErrNotFound is returned for rows that are absent or not owned by the
	// requesting user.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when a websocket ticket is missing,
	// expired, or already consumed.
	ErrUnauthorized = errors.New("unauthorized")
)
