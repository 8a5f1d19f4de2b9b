package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivmaks/raskraska/internal/models"
	"github.com/ivmaks/raskraska/internal/server/storage"
)

// createTestStorage создает in-memory SQLite storage для тестов
func createTestStorage(t *testing.T) *Storage {
	t.Helper()

	ctx := context.Background()
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, s.Close())
	})

	return s
}

func testUserState(rev int64) *models.UserState {
	return &models.UserState{
		UserID:     100,
		LastPageID: "fox",
		ClientRev:  rev,
		UpdatedAt:  time.Now(),
	}
}

func TestStorage_GetUserState_NotFound(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)

	_, err := s.GetUserState(ctx, 100)
	assert.ErrorIs(t, err, storage.ErrStateNotFound)
}

func TestStorage_UpsertUserState_Insert(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)

	stored, applied, err := s.UpsertUserState(ctx, testUserState(1))
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int64(1), stored.ClientRev)
	assert.Equal(t, "fox", stored.LastPageID)
}

func TestStorage_UpsertUserState_NewerRevWins(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)

	_, _, err := s.UpsertUserState(ctx, testUserState(3))
	require.NoError(t, err)

	newer := testUserState(7)
	newer.LastPageID = "whale"

	stored, applied, err := s.UpsertUserState(ctx, newer)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, int64(7), stored.ClientRev)
	assert.Equal(t, "whale", stored.LastPageID)
}

func TestStorage_UpsertUserState_StaleRevIgnored(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)

	_, _, err := s.UpsertUserState(ctx, testUserState(7))
	require.NoError(t, err)

	stale := testUserState(3)
	stale.LastPageID = "whale"

	stored, applied, err := s.UpsertUserState(ctx, stale)
	require.NoError(t, err)
	assert.False(t, applied)
	// Хранимое состояние нетронуто, ответ отдает его как есть
	assert.Equal(t, int64(7), stored.ClientRev)
	assert.Equal(t, "fox", stored.LastPageID)
}

func TestStorage_UpsertUserState_EqualRevIgnored(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)

	_, _, err := s.UpsertUserState(ctx, testUserState(5))
	require.NoError(t, err)

	// Ретрай того же push: ревизия равна, апдейт не применяется
	same := testUserState(5)
	same.LastPageID = "whale"

	stored, applied, err := s.UpsertUserState(ctx, same)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, "fox", stored.LastPageID)
}

func TestStorage_UpsertUserState_PerUserIsolation(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)

	first := testUserState(5)
	second := testUserState(2)
	second.UserID = 200
	second.LastPageID = "rocket"

	_, _, err := s.UpsertUserState(ctx, first)
	require.NoError(t, err)
	_, applied, err := s.UpsertUserState(ctx, second)
	require.NoError(t, err)
	assert.True(t, applied)

	stored, err := s.GetUserState(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, "rocket", stored.LastPageID)
	assert.Equal(t, int64(2), stored.ClientRev)
}
