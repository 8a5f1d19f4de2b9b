package storage

import "context"

//go:generate moq -out metadata_mock.go . MetadataStorage

// MetadataStorage defines interface for storing client metadata
type MetadataStorage interface {
	// GetDeviceID retrieves the stable per-device id
	// Returns ErrDeviceIDNotFound if none has been saved yet
	GetDeviceID(ctx context.Context) (string, error)

	// SaveDeviceID persists the per-device id
	SaveDeviceID(ctx context.Context, deviceID string) error

	// GetAccessToken retrieves the stored access token
	// Returns ErrTokenNotFound if the client is not authenticated
	GetAccessToken(ctx context.Context) (string, error)

	// SaveAccessToken persists the access token
	SaveAccessToken(ctx context.Context, token string) error

	// DeleteAccessToken removes the stored access token
	DeleteAccessToken(ctx context.Context) error
}
