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

// UpsertPageProgress creates or updates progress for (user, page).
// То же правило, что и для user_state: строго большая ревизия выигрывает.
// Returns the stored progress after the attempt and whether the incoming
// progress was applied.
func (s *Storage) UpsertPageProgress(ctx context.Context, page *models.PageState) (*models.PageState, bool, error) {
	query := `
		INSERT INTO page_progress (
			user_id, page_id, content_hash, progress_b64,
			regions_count, palette_len, client_rev, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, page_id) DO UPDATE SET
			content_hash = excluded.content_hash,
			progress_b64 = excluded.progress_b64,
			regions_count = excluded.regions_count,
			palette_len = excluded.palette_len,
			client_rev = excluded.client_rev,
			updated_at = excluded.updated_at
		WHERE excluded.client_rev > page_progress.client_rev
	`

	result, err := s.db.ExecContext(ctx, query,
		page.UserID,
		page.PageID,
		page.ContentHash,
		page.ProgressB64,
		page.RegionsCount,
		page.PaletteLen,
		page.ClientRev,
		page.UpdatedAt.Unix(),
	)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert page progress: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	stored, err := s.GetPageProgress(ctx, page.UserID, page.PageID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read stored progress: %w", err)
	}

	return stored, rows > 0, nil
}

// GetPageProgress retrieves progress for (user, page)
// Returns ErrPageNotFound if no progress was ever pushed
func (s *Storage) GetPageProgress(ctx context.Context, userID int64, pageID string) (*models.PageState, error) {
	query := `
		SELECT user_id, page_id, content_hash, progress_b64,
		       regions_count, palette_len, client_rev, updated_at
		FROM page_progress
		WHERE user_id = ? AND page_id = ?
	`

	page := &models.PageState{}
	var updatedAt int64

	err := s.db.QueryRowContext(ctx, query, userID, pageID).Scan(
		&page.UserID,
		&page.PageID,
		&page.ContentHash,
		&page.ProgressB64,
		&page.RegionsCount,
		&page.PaletteLen,
		&page.ClientRev,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrPageNotFound
		}
		return nil, fmt.Errorf("failed to get page progress: %w", err)
	}

	page.UpdatedAt = time.Unix(updatedAt, 0)

	return page, nil
}
