package repository

import (
	"context"
	"testing"
	"time"

	"hotelier/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisSessionRepository(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	repo := NewRedisSessionRepository(client, time.Hour)
	ctx := context.Background()

	t.Run("SetAndGetSession", func(t *testing.T) {
		session := &models.GuestSession{
			SessionID:  "s-1",
			GuestName:  "Alex Guest",
			GuestEmail: "alex@example.com",
			UpdatedAt:  time.Now().UTC(),
		}

		err := repo.SetSession(ctx, session)
		require.NoError(t, err)

		got, err := repo.GetSession(ctx, "s-1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, session.GuestName, got.GuestName)
		assert.Equal(t, session.GuestEmail, got.GuestEmail)
	})

	t.Run("GetNonExistentSession", func(t *testing.T) {
		got, err := repo.GetSession(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ClearSession", func(t *testing.T) {
		session := &models.GuestSession{SessionID: "s-2", GuestName: "Kim"}
		require.NoError(t, repo.SetSession(ctx, session))

		err := repo.ClearSession(ctx, "s-2")
		require.NoError(t, err)

		got, err := repo.GetSession(ctx, "s-2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("TTLExpiry", func(t *testing.T) {
		session := &models.GuestSession{SessionID: "s-3", GuestName: "Sam"}
		require.NoError(t, repo.SetSession(ctx, session))

		s.FastForward(2 * time.Hour)

		got, err := repo.GetSession(ctx, "s-3")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestRedisSessionRepositoryNilClient(t *testing.T) {
	repo := NewRedisSessionRepository(nil, time.Hour)
	ctx := context.Background()

	_, err := repo.GetSession(ctx, "s-1")
	assert.Error(t, err)
	assert.Error(t, repo.SetSession(ctx, &models.GuestSession{SessionID: "s-1"}))
	assert.Error(t, repo.ClearSession(ctx, "s-1"))
}
