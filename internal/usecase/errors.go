package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrCommitRejected wraps an opaque backend rejection of a commit call.
	// The backend's reason travels with the wrap and is surfaced verbatim.
	ErrCommitRejected = errors.New("commit rejected by backend")
)
