package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrStateNotFound indicates that user has no synced state yet
	ErrStateNotFound = errors.New("state not found")

	// ErrPageNotFound indicates that user has no progress for the page
	ErrPageNotFound = errors.New("page progress not found")
)
