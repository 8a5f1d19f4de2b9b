package storage

import (
	"context"

	"github.com/ivmaks/raskraska/internal/models"
)

// StateStorage defines interface for per-user sync state persistence
type StateStorage interface {
	// UpsertUserState creates or updates the user's navigation state.
	// The incoming state is applied only if its client_rev is strictly
	// greater than the stored one, so retried and out-of-order pushes
	// are idempotent.
	// Returns the stored state after the attempt and whether the
	// incoming state was applied.
	UpsertUserState(ctx context.Context, state *models.UserState) (*models.UserState, bool, error)

	// GetUserState retrieves the user's navigation state
	// Returns ErrStateNotFound if the user has never synced
	GetUserState(ctx context.Context, userID int64) (*models.UserState, error)
}

// PageStorage defines interface for per-page progress persistence
type PageStorage interface {
	// UpsertPageProgress creates or updates progress for (user, page).
	// Same rule as UpsertUserState: strictly greater client_rev wins.
	// Returns the stored progress after the attempt and whether the
	// incoming progress was applied.
	UpsertPageProgress(ctx context.Context, page *models.PageState) (*models.PageState, bool, error)

	// GetPageProgress retrieves progress for (user, page)
	// Returns ErrPageNotFound if no progress was ever pushed
	GetPageProgress(ctx context.Context, userID int64, pageID string) (*models.PageState, error)
}
