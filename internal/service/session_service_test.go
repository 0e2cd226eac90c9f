package service

import (
	"context"
	"testing"
	"time"

	"hotelier/internal/models"
	"hotelier/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionServiceSaveAndGet(t *testing.T) {
	svc := NewSessionService(repository.NewMemorySessionRepository(time.Hour))
	ctx := context.Background()

	session := &models.GuestSession{
		GuestName:  "Alex Guest",
		GuestEmail: "alex@example.com",
	}
	require.NoError(t, svc.SaveSession(ctx, session))
	assert.NotEmpty(t, session.SessionID, "blank session id gets assigned")
	assert.False(t, session.UpdatedAt.IsZero())

	got, err := svc.GetSession(ctx, session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, "Alex Guest", got.GuestName)
}

func TestSessionServiceValidation(t *testing.T) {
	svc := NewSessionService(repository.NewMemorySessionRepository(time.Hour))
	ctx := context.Background()

	err := svc.SaveSession(ctx, &models.GuestSession{GuestEmail: "alex@example.com"})
	assert.ErrorIs(t, err, ErrMissingField)

	err = svc.SaveSession(ctx, &models.GuestSession{GuestName: "Alex", GuestEmail: "nope"})
	assert.ErrorIs(t, err, ErrMalformedEmail)
}

func TestSessionServiceClear(t *testing.T) {
	svc := NewSessionService(repository.NewMemorySessionRepository(time.Hour))
	ctx := context.Background()

	session := &models.GuestSession{GuestName: "Alex", GuestEmail: "alex@example.com"}
	require.NoError(t, svc.SaveSession(ctx, session))

	require.NoError(t, svc.ClearSession(ctx, session.SessionID))

	_, err := svc.GetSession(ctx, session.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Clearing again is fine.
	assert.NoError(t, svc.ClearSession(ctx, session.SessionID))
}
