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

// UpsertUserState creates or updates the user's navigation state.
// Повторная доставка того же push и гонки между устройствами гасятся
// условием client_rev > stored: применяется только строго большая ревизия.
// Returns the stored state after the attempt and whether the incoming
// state was applied.
func (s *Storage) UpsertUserState(ctx context.Context, state *models.UserState) (*models.UserState, bool, error) {
	query := `
		INSERT INTO user_state (user_id, last_page_id, client_rev, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			last_page_id = excluded.last_page_id,
			client_rev = excluded.client_rev,
			updated_at = excluded.updated_at
		WHERE excluded.client_rev > user_state.client_rev
	`

	result, err := s.db.ExecContext(ctx, query,
		state.UserID,
		state.LastPageID,
		state.ClientRev,
		state.UpdatedAt.Unix(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert user state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	stored, err := s.GetUserState(ctx, state.UserID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read stored state: %w", err)
	}

	return stored, rows > 0, nil
}

// GetUserState retrieves the user's navigation state
// Returns ErrStateNotFound if the user has never synced
func (s *Storage) GetUserState(ctx context.Context, userID int64) (*models.UserState, error) {
	query := `
		SELECT user_id, last_page_id, client_rev, updated_at
		FROM user_state
		WHERE user_id = ?
	`

	state := &models.UserState{}
	var updatedAt int64

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&state.UserID,
		&state.LastPageID,
		&state.ClientRev,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrStateNotFound
		}
		return nil, fmt.Errorf("failed to get user state: %w", err)
	}

	state.UpdatedAt = time.Unix(updatedAt, 0)

	return state, nil
}
