package domain

import (
	"context"

	"hotelier/internal/interval"
	"hotelier/internal/models"
)

// Repository is the authoritative booking store plus the seeded catalog.
// CancelBooking's second return reports whether this call changed state;
// it is false for a repeat cancel.
type Repository interface {
	CreateBookingWithLock(ctx context.Context, booking *models.Booking) error
	CancelBooking(ctx context.Context, id string) (*models.Booking, bool, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	GetBookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error)
	FindConflicts(ctx context.Context, roomID string, rng interval.Range) ([]models.Booking, error)
	GetHotels(ctx context.Context) ([]models.Hotel, error)
	GetHotel(ctx context.Context, id string) (*models.Hotel, error)
	GetRoomsByHotel(ctx context.Context, hotelID string) ([]models.Room, error)
	GetRooms(ctx context.Context) ([]models.Room, error)
	GetRoom(ctx context.Context, id string) (*models.Room, error)
}

// SessionRepository stores guest sessions with a TTL.
type SessionRepository interface {
	GetSession(ctx context.Context, sessionID string) (*models.GuestSession, error)
	SetSession(ctx context.Context, session *models.GuestSession) error
	ClearSession(ctx context.Context, sessionID string) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// ExportScheduler accepts requests to rebuild the bookings report.
type ExportScheduler interface {
	EnqueueExport(ctx context.Context) error
}

// BookingService is the lifecycle facade the transport layer talks to.
type BookingService interface {
	RequestBooking(ctx context.Context, input models.CreateBookingInput) (*models.Booking, error)
	CancelBooking(ctx context.Context, id string) (*models.Booking, error)
	CheckAvailability(ctx context.Context, roomID, checkIn, checkOut string) (*models.AvailabilityResult, error)
	GetBookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error)
}

type CatalogService interface {
	ListHotels(ctx context.Context) ([]models.Hotel, error)
	GetHotel(ctx context.Context, id string) (*models.Hotel, error)
	ListRoomsByHotel(ctx context.Context, hotelID string) ([]models.Room, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
}

type SessionManager interface {
	GetSession(ctx context.Context, sessionID string) (*models.GuestSession, error)
	SaveSession(ctx context.Context, session *models.GuestSession) error
	ClearSession(ctx context.Context, sessionID string) error
}
