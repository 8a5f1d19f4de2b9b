package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/ivmaks/raskraska/internal/client/storage"
)

const (
	keyDeviceID    = "device_id"
	keyAccessToken = "access_token"
)

// GetDeviceID retrieves the stable per-device id
// Returns storage.ErrDeviceIDNotFound if none has been saved yet
func (s *Storage) GetDeviceID(ctx context.Context) (string, error) {
	return s.getMetadata(keyDeviceID, storage.ErrDeviceIDNotFound)
}

// SaveDeviceID persists the per-device id
func (s *Storage) SaveDeviceID(ctx context.Context, deviceID string) error {
	return s.setMetadata(keyDeviceID, deviceID)
}

// GetAccessToken retrieves the stored access token
// Returns storage.ErrTokenNotFound if the client is not authenticated
func (s *Storage) GetAccessToken(ctx context.Context) (string, error) {
	return s.getMetadata(keyAccessToken, storage.ErrTokenNotFound)
}

// SaveAccessToken persists the access token
func (s *Storage) SaveAccessToken(ctx context.Context, token string) error {
	return s.setMetadata(keyAccessToken, token)
}

// DeleteAccessToken removes the stored access token
func (s *Storage) DeleteAccessToken(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Delete([]byte(keyAccessToken)); err != nil {
			return fmt.Errorf("failed to delete access token: %w", err)
		}

		return nil
	})
}

// getMetadata читает строковое значение из metadata bucket
func (s *Storage) getMetadata(key string, notFound error) (string, error) {
	if s.db == nil {
		return "", storage.ErrStorageClosed
	}

	var value string

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return notFound
		}

		value = string(data)
		return nil
	})

	if err != nil {
		return "", err
	}

	return value, nil
}

// setMetadata сохраняет строковое значение в metadata bucket
func (s *Storage) setMetadata(key, value string) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMetadata)
		if bucket == nil {
			return fmt.Errorf("metadata bucket not found")
		}

		if err := bucket.Put([]byte(key), []byte(value)); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("transaction failed: %w", err)
	}

	return nil
}
