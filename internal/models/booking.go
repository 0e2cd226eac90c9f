package models

import (
	"encoding/json"
	"time"

	"hotelier/internal/interval"
)

// Booking occupies the half-open interval [CheckIn, CheckOut) on one room.
// It is created active and can only transition active -> cancelled.
type Booking struct {
	ID         string
	RoomID     string
	GuestName  string
	GuestEmail string
	CheckIn    time.Time
	CheckOut   time.Time
	IsActive   bool
	CreatedAt  time.Time
}

// bookingWire is the JSON shape of a booking. CheckIn/CheckOut travel
// as YYYY-MM-DD calendar dates, not timestamps.
type bookingWire struct {
	ID         string    `json:"id"`
	RoomID     string    `json:"room_id"`
	GuestName  string    `json:"guest_name"`
	GuestEmail string    `json:"guest_email"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func (b Booking) MarshalJSON() ([]byte, error) {
	return json.Marshal(bookingWire{
		ID:         b.ID,
		RoomID:     b.RoomID,
		GuestName:  b.GuestName,
		GuestEmail: b.GuestEmail,
		CheckIn:    b.CheckIn.Format(interval.DateLayout),
		CheckOut:   b.CheckOut.Format(interval.DateLayout),
		IsActive:   b.IsActive,
		CreatedAt:  b.CreatedAt,
	})
}

func (b *Booking) UnmarshalJSON(data []byte) error {
	var w bookingWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	checkIn, err := interval.ParseDate(w.CheckIn)
	if err != nil {
		return err
	}
	checkOut, err := interval.ParseDate(w.CheckOut)
	if err != nil {
		return err
	}

	*b = Booking{
		ID:         w.ID,
		RoomID:     w.RoomID,
		GuestName:  w.GuestName,
		GuestEmail: w.GuestEmail,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		IsActive:   w.IsActive,
		CreatedAt:  w.CreatedAt,
	}
	return nil
}

// CreateBookingInput carries the caller-supplied fields for a new booking.
// Dates are ISO calendar-day strings (YYYY-MM-DD).
type CreateBookingInput struct {
	RoomID     string `json:"room_id"`
	GuestName  string `json:"guest_name"`
	GuestEmail string `json:"guest_email"`
	CheckIn    string `json:"check_in"`
	CheckOut   string `json:"check_out"`
}

// AvailabilityResult is the answer to a date-range availability query.
// Available is true iff ConflictingBookings is empty.
type AvailabilityResult struct {
	Available           bool      `json:"available"`
	ConflictingBookings []Booking `json:"conflicting_bookings"`
}
