package repository

import (
	"context"
	"testing"
	"time"

	"hotelier/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)
	ctx := context.Background()

	session := &models.GuestSession{
		SessionID:  "s-1",
		GuestName:  "Alex Guest",
		GuestEmail: "alex@example.com",
	}
	require.NoError(t, repo.SetSession(ctx, session))

	got, err := repo.GetSession(ctx, "s-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alex Guest", got.GuestName)

	require.NoError(t, repo.ClearSession(ctx, "s-1"))
	got, err = repo.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySessionRepositoryExpiry(t *testing.T) {
	repo := NewMemorySessionRepository(time.Millisecond)
	ctx := context.Background()

	require.NoError(t, repo.SetSession(ctx, &models.GuestSession{SessionID: "s-1"}))
	time.Sleep(5 * time.Millisecond)

	got, err := repo.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Nil(t, got, "expired session reads as missing")
}

func TestMemorySessionRepositoryMissing(t *testing.T) {
	repo := NewMemorySessionRepository(time.Hour)

	got, err := repo.GetSession(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}
