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

func TestStorage_GetUserByID_NotFound(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)

	_, err := s.GetUserByID(ctx, 42)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestStorage_UpsertUser_FirstLogin(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)

	now := time.Now()
	user := &models.TelegramUser{
		ID:           42,
		Username:     "ivan",
		FirstName:    "Ivan",
		LanguageCode: "ru",
		FirstSeen:    now,
		LastSeen:     now,
	}

	require.NoError(t, s.UpsertUser(ctx, user))

	stored, err := s.GetUserByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "ivan", stored.Username)
	assert.Equal(t, "Ivan", stored.FirstName)
	assert.Equal(t, "ru", stored.LanguageCode)
}

func TestStorage_UpsertUser_RepeatLoginKeepsFirstSeen(t *testing.T) {
	ctx := context.Background()
	s := createTestStorage(t)

	firstSeen := time.Now().Add(-24 * time.Hour).Truncate(time.Second)
	user := &models.TelegramUser{
		ID:        42,
		Username:  "ivan",
		FirstSeen: firstSeen,
		LastSeen:  firstSeen,
	}
	require.NoError(t, s.UpsertUser(ctx, user))

	// Повторный вход: профиль обновился, first_seen остался прежним
	later := time.Now().Truncate(time.Second)
	user.Username = "ivan_new"
	user.FirstSeen = later
	user.LastSeen = later
	require.NoError(t, s.UpsertUser(ctx, user))

	stored, err := s.GetUserByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, "ivan_new", stored.Username)
	assert.Equal(t, firstSeen.Unix(), stored.FirstSeen.Unix())
	assert.Equal(t, later.Unix(), stored.LastSeen.Unix())
}
