package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"hotelier/internal/domain"
	"hotelier/internal/events"
	"hotelier/internal/interval"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

// BookingService is the lifecycle facade in front of the booking store.
// It owns input validation and error ordering; the store owns atomicity.
type BookingService struct {
	repo          domain.Repository
	eventBus      domain.EventPublisher
	exportWorker  domain.ExportScheduler
	maxStayNights int
	logger        *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, exportWorker domain.ExportScheduler, maxStayNights int, logger *zerolog.Logger) *BookingService {
	if maxStayNights <= 0 {
		maxStayNights = models.DefaultMaxStayNights
	}
	return &BookingService{
		repo:          repo,
		eventBus:      eventBus,
		exportWorker:  exportWorker,
		maxStayNights: maxStayNights,
		logger:        logger,
	}
}

// RequestBooking creates a fresh active booking. Validation order is
// fixed so error reporting is deterministic: required fields, then email
// shape, then the interval, then the conflict check. The first failing
// step wins and later steps are not attempted.
func (s *BookingService) RequestBooking(ctx context.Context, input models.CreateBookingInput) (*models.Booking, error) {
	if err := validateRequired(input); err != nil {
		return nil, err
	}

	if _, err := mail.ParseAddress(input.GuestEmail); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrMalformedEmail, input.GuestEmail)
	}

	rng, err := interval.NewRange(input.CheckIn, input.CheckOut)
	if err != nil {
		return nil, err
	}
	if rng.Nights() > s.maxStayNights {
		return nil, fmt.Errorf("%w: %d nights, limit %d", ErrStayTooLong, rng.Nights(), s.maxStayNights)
	}

	booking := &models.Booking{
		RoomID:     input.RoomID,
		GuestName:  strings.TrimSpace(input.GuestName),
		GuestEmail: strings.TrimSpace(input.GuestEmail),
		CheckIn:    rng.Start,
		CheckOut:   rng.End,
	}

	if err := s.repo.CreateBookingWithLock(ctx, booking); err != nil {
		return nil, err
	}

	s.publishEvent(events.EventBookingCreated, *booking)
	s.enqueueExport(ctx)

	return booking, nil
}

// CancelBooking marks the booking cancelled. Cancelling twice is not an
// error; the second call returns the already-cancelled booking and
// triggers no event or export, since nothing changed.
func (s *BookingService) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	booking, changed, err := s.repo.CancelBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if changed {
		s.publishEvent(events.EventBookingCancelled, *booking)
		s.enqueueExport(ctx)
	}

	return booking, nil
}

// CheckAvailability answers whether the room is free for the half-open
// range. A pure read: available iff no active booking overlaps.
func (s *BookingService) CheckAvailability(ctx context.Context, roomID, checkIn, checkOut string) (*models.AvailabilityResult, error) {
	rng, err := interval.NewRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	conflicts, err := s.repo.FindConflicts(ctx, roomID, rng)
	if err != nil {
		return nil, err
	}

	return &models.AvailabilityResult{
		Available:           len(conflicts) == 0,
		ConflictingBookings: conflicts,
	}, nil
}

// GetBookingsByRoom returns all bookings for the room, cancelled ones
// included; callers filter as needed.
func (s *BookingService) GetBookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error) {
	return s.repo.GetBookingsByRoom(ctx, roomID)
}

func validateRequired(input models.CreateBookingInput) error {
	fields := []struct {
		name  string
		value string
	}{
		{"room_id", input.RoomID},
		{"guest_name", input.GuestName},
		{"guest_email", input.GuestEmail},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}
	return nil
}

func (s *BookingService) publishEvent(eventType string, booking models.Booking) {
	if s.eventBus == nil {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:  booking.ID,
		RoomID:     booking.RoomID,
		GuestName:  booking.GuestName,
		GuestEmail: booking.GuestEmail,
		CheckIn:    booking.CheckIn.Format(interval.DateLayout),
		CheckOut:   booking.CheckOut.Format(interval.DateLayout),
		IsActive:   booking.IsActive,
		CreatedAt:  booking.CreatedAt,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Str("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueExport(ctx context.Context) {
	if s.exportWorker == nil {
		return
	}

	if err := s.exportWorker.EnqueueExport(ctx); err != nil {
		s.logger.Error().Err(err).Msg("export enqueue error")
	}
}
