package storage

import (
	"context"

	"github.com/ivmaks/raskraska/internal/models"
)

// UserStorage defines interface for Telegram user persistence
type UserStorage interface {
	// UpsertUser creates the user on first login and refreshes
	// profile fields and last_seen on every subsequent login
	UpsertUser(ctx context.Context, user *models.TelegramUser) error

	// GetUserByID retrieves user by Telegram ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID int64) (*models.TelegramUser, error)
}
