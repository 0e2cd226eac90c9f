package database

import (
	"errors"
	"fmt"
	"strings"

	"hotelier/internal/models"
)

var (
	// ErrNotFound means the requested booking id is unknown.
	ErrNotFound = errors.New("booking not found")

	// ErrHotelNotFound means the requested hotel id is unknown.
	ErrHotelNotFound = errors.New("hotel not found")

	// ErrRoomNotFound means the requested room id is unknown.
	ErrRoomNotFound = errors.New("room not found")

	// ErrConflict is the sentinel all ConflictError values unwrap to.
	ErrConflict = errors.New("booking conflict")
)

// ConflictError reports that a requested stay overlaps existing active
// bookings on the same room. It carries the conflicting bookings so the
// caller can show the guest what is in the way.
type ConflictError struct {
	RoomID      string
	Conflicting []models.Booking
}

func (e *ConflictError) Error() string {
	ranges := make([]string, 0, len(e.Conflicting))
	for _, b := range e.Conflicting {
		ranges = append(ranges, fmt.Sprintf("[%s, %s)",
			b.CheckIn.Format("2006-01-02"), b.CheckOut.Format("2006-01-02")))
	}
	return fmt.Sprintf("room %s already booked for %s", e.RoomID, strings.Join(ranges, ", "))
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
