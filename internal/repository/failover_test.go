package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSessionRepo struct {
	err error
}

func (r *failingSessionRepo) GetSession(ctx context.Context, sessionID string) (*models.GuestSession, error) {
	return nil, r.err
}

func (r *failingSessionRepo) SetSession(ctx context.Context, session *models.GuestSession) error {
	return r.err
}

func (r *failingSessionRepo) ClearSession(ctx context.Context, sessionID string) error {
	return r.err
}

func TestFailoverUsesPrimary(t *testing.T) {
	primary := NewMemorySessionRepository(time.Hour)
	fallback := NewMemorySessionRepository(time.Hour)
	logger := zerolog.Nop()

	repo := NewFailoverSessionRepository(primary, fallback, &logger)
	ctx := context.Background()

	session := &models.GuestSession{SessionID: "s-1", GuestName: "Alex"}
	require.NoError(t, repo.SetSession(ctx, session))

	// Written to the primary, not the fallback.
	fromPrimary, err := primary.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.NotNil(t, fromPrimary)

	fromFallback, err := fallback.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Nil(t, fromFallback)
}

func TestFailoverFallsBackOnError(t *testing.T) {
	primary := &failingSessionRepo{err: errors.New("redis down")}
	fallback := NewMemorySessionRepository(time.Hour)
	logger := zerolog.Nop()

	repo := NewFailoverSessionRepository(primary, fallback, &logger)
	ctx := context.Background()

	session := &models.GuestSession{SessionID: "s-1", GuestName: "Alex"}
	require.NoError(t, repo.SetSession(ctx, session))

	// The session landed in the fallback and reads keep working.
	got, err := repo.GetSession(ctx, "s-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alex", got.GuestName)

	require.NoError(t, repo.ClearSession(ctx, "s-1"))
	got, err = repo.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestFailoverStaysDownWithinRecoveryWindow(t *testing.T) {
	primary := &failingSessionRepo{err: errors.New("redis down")}
	fallback := NewMemorySessionRepository(time.Hour)
	logger := zerolog.Nop()

	repo := NewFailoverSessionRepository(primary, fallback, &logger)
	ctx := context.Background()

	// First call marks the primary down.
	_, err := repo.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.True(t, repo.isDown.Load())

	// Primary recovers, but the probe window has not elapsed yet, so
	// reads keep hitting the fallback.
	primary.err = nil
	_, err = repo.GetSession(ctx, "s-1")
	require.NoError(t, err)
	assert.True(t, repo.isDown.Load())
}
