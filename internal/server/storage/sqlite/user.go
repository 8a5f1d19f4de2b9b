package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ivmaks/raskraska/internal/models"
	"github.com/ivmaks/raskraska/internal/server/storage"
)

// UpsertUser creates the user on first login and refreshes profile
// fields and last_seen on every subsequent login. first_seen никогда
// не перезаписывается.
func (s *Storage) UpsertUser(ctx context.Context, user *models.TelegramUser) error {
	query := `
		INSERT INTO users (id, username, first_name, language_code, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			first_name = excluded.first_name,
			language_code = excluded.language_code,
			last_seen = excluded.last_seen
	`

	_, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.FirstName,
		user.LanguageCode,
		user.FirstSeen.Unix(),
		user.LastSeen.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}

	return nil
}

// GetUserByID retrieves user by Telegram ID
// Returns ErrUserNotFound if user doesn't exist
func (s *Storage) GetUserByID(ctx context.Context, userID int64) (*models.TelegramUser, error) {
	query := `
		SELECT id, username, first_name, language_code, first_seen, last_seen
		FROM users
		WHERE id = ?
	`

	user := &models.TelegramUser{}
	var firstSeen, lastSeen int64

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Username,
		&user.FirstName,
		&user.LanguageCode,
		&firstSeen,
		&lastSeen,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.FirstSeen = time.Unix(firstSeen, 0)
	user.LastSeen = time.Unix(lastSeen, 0)

	return user, nil
}
