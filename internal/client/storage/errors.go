package storage

import "errors"

// Common client storage errors
var (
	// ErrKeyNotFound indicates that no value exists for the key
	ErrKeyNotFound = errors.New("key not found")

	// ErrTokenNotFound indicates that no access token is stored
	ErrTokenNotFound = errors.New("access token not found")

	// ErrDeviceIDNotFound indicates that no device id has been generated yet
	ErrDeviceIDNotFound = errors.New("device id not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
