package repository

import (
	"context"
	"sync"
	"time"

	"hotelier/internal/models"
)

// MemorySessionRepository holds guest sessions in process memory. Used
// as the failover target when Redis is down and in tests.
type MemorySessionRepository struct {
	sessions sync.Map // map[string]*sessionEntry
	ttl      time.Duration
}

type sessionEntry struct {
	session   *models.GuestSession
	expiresAt time.Time
}

func NewMemorySessionRepository(ttl time.Duration) *MemorySessionRepository {
	return &MemorySessionRepository{ttl: ttl}
}

func (r *MemorySessionRepository) GetSession(ctx context.Context, sessionID string) (*models.GuestSession, error) {
	val, ok := r.sessions.Load(sessionID)
	if !ok {
		return nil, nil
	}

	entry := val.(*sessionEntry)
	if time.Now().After(entry.expiresAt) {
		r.sessions.Delete(sessionID)
		return nil, nil
	}
	return entry.session, nil
}

func (r *MemorySessionRepository) SetSession(ctx context.Context, session *models.GuestSession) error {
	r.sessions.Store(session.SessionID, &sessionEntry{
		session:   session,
		expiresAt: time.Now().Add(r.ttl),
	})
	return nil
}

func (r *MemorySessionRepository) ClearSession(ctx context.Context, sessionID string) error {
	r.sessions.Delete(sessionID)
	return nil
}
