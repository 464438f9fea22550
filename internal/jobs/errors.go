package jobs

import "errors"

var (
	// ErrNotFound indicates no job matched the id for the owner.
	ErrNotFound = errors.New("job not found")
	// ErrNotOwned indicates the id exists but belongs to another user.
	ErrNotOwned = errors.New("job owned by another user")
	// ErrInvalidInput indicates a malformed request.
	ErrInvalidInput = errors.New("invalid input")
)
