package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/google/uuid"
)

// SessionService manages guest profile sessions stored server-side
// with a TTL.
type SessionService struct {
	repo domain.SessionRepository
}

func NewSessionService(repo domain.SessionRepository) *SessionService {
	return &SessionService{repo: repo}
}

// GetSession returns the stored session or ErrSessionNotFound.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*models.GuestSession, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SaveSession validates and stores the guest profile. A blank session id
// gets a fresh one assigned.
func (s *SessionService) SaveSession(ctx context.Context, session *models.GuestSession) error {
	if strings.TrimSpace(session.GuestName) == "" {
		return fmt.Errorf("%w: guest_name", ErrMissingField)
	}
	if _, err := mail.ParseAddress(session.GuestEmail); err != nil {
		return fmt.Errorf("%w: %q", ErrMalformedEmail, session.GuestEmail)
	}

	if session.SessionID == "" {
		session.SessionID = uuid.NewString()
	}
	session.UpdatedAt = time.Now().UTC()

	return s.repo.SetSession(ctx, session)
}

// ClearSession is the logout path: explicit teardown, idempotent.
func (s *SessionService) ClearSession(ctx context.Context, sessionID string) error {
	return s.repo.ClearSession(ctx, sessionID)
}
