package database

import (
	"context"
	"errors"
	"os"
	"testing"

	"hotelier/internal/interval"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	logger := zerolog.New(os.Stdout)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	err = db.SeedHotels(context.Background(), []models.Hotel{
		{
			ID:      "hotel-1",
			Name:    "Grand Plaza",
			Address: "1 Main St",
			Rooms: []models.Room{
				{ID: "room-1", Number: "101", Type: "standard", Price: 120},
				{ID: "room-2", Number: "102", Type: "deluxe", Price: 200},
			},
		},
	})
	require.NoError(t, err)
	return db
}

func newBooking(roomID, checkIn, checkOut string) *models.Booking {
	rng, err := interval.NewRange(checkIn, checkOut)
	if err != nil {
		panic(err)
	}
	return &models.Booking{
		RoomID:     roomID,
		GuestName:  "Alex Guest",
		GuestEmail: "alex@example.com",
		CheckIn:    rng.Start,
		CheckOut:   rng.End,
	}
}

func TestCreateBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	booking := newBooking("room-1", "2024-12-01", "2024-12-05")
	err := db.CreateBookingWithLock(ctx, booking)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.True(t, booking.IsActive)
	assert.False(t, booking.CreatedAt.IsZero())

	got, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.RoomID, got.RoomID)
	assert.Equal(t, "2024-12-01", got.CheckIn.Format(interval.DateLayout))
	assert.Equal(t, "2024-12-05", got.CheckOut.Format(interval.DateLayout))
}

func TestCreateBookingUnknownRoom(t *testing.T) {
	db := setupTestDB(t)

	err := db.CreateBookingWithLock(context.Background(), newBooking("no-such-room", "2024-12-01", "2024-12-05"))
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreateBookingConflict(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	first := newBooking("room-1", "2024-12-01", "2024-12-05")
	require.NoError(t, db.CreateBookingWithLock(ctx, first))

	second := newBooking("room-1", "2024-12-03", "2024-12-06")
	err := db.CreateBookingWithLock(ctx, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Len(t, conflict.Conflicting, 1)
	assert.Equal(t, first.ID, conflict.Conflicting[0].ID)

	// The failed create must not leave a row behind.
	bookings, err := db.GetBookingsByRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}

func TestAdjacentStaysDoNotConflict(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// Half-open semantics: check-out day itself is free.
	require.NoError(t, db.CreateBookingWithLock(ctx, newBooking("room-1", "2024-12-01", "2024-12-05")))
	require.NoError(t, db.CreateBookingWithLock(ctx, newBooking("room-1", "2024-12-05", "2024-12-08")))

	bookings, err := db.GetBookingsByRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestConflictScopedToRoom(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.CreateBookingWithLock(ctx, newBooking("room-1", "2024-12-01", "2024-12-05")))
	// Same dates on another room are fine.
	require.NoError(t, db.CreateBookingWithLock(ctx, newBooking("room-2", "2024-12-01", "2024-12-05")))
}

func TestCancelBooking(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	booking := newBooking("room-1", "2024-12-01", "2024-12-05")
	require.NoError(t, db.CreateBookingWithLock(ctx, booking))

	cancelled, changed, err := db.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.False(t, cancelled.IsActive)
	assert.True(t, changed)

	// Idempotent: a second cancel returns the same final state and
	// reports that nothing changed.
	again, changed, err := db.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.False(t, again.IsActive)
	assert.False(t, changed)
	assert.Equal(t, cancelled.ID, again.ID)
}

func TestCancelBookingNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, _, err := db.CancelBooking(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelFreesInterval(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	booking := newBooking("room-1", "2024-12-01", "2024-12-05")
	require.NoError(t, db.CreateBookingWithLock(ctx, booking))

	rng, err := interval.NewRange("2024-12-03", "2024-12-06")
	require.NoError(t, err)

	conflicts, err := db.FindConflicts(ctx, "room-1", rng)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, booking.ID, conflicts[0].ID)

	_, _, err = db.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)

	conflicts, err = db.FindConflicts(ctx, "room-1", rng)
	require.NoError(t, err)
	assert.Empty(t, conflicts)

	// The freed interval can be booked again.
	require.NoError(t, db.CreateBookingWithLock(ctx, newBooking("room-1", "2024-12-03", "2024-12-06")))
}

func TestGetBookingsByRoomOrdering(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	late := newBooking("room-1", "2024-12-20", "2024-12-22")
	early := newBooking("room-1", "2024-12-01", "2024-12-03")
	require.NoError(t, db.CreateBookingWithLock(ctx, late))
	require.NoError(t, db.CreateBookingWithLock(ctx, early))

	bookings, err := db.GetBookingsByRoom(ctx, "room-1")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, early.ID, bookings[0].ID)
	assert.Equal(t, late.ID, bookings[1].ID)
}

func TestNoOverlapInvariant(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	// A mixed sequence of creates and cancels; active bookings must
	// never overlap pairwise afterwards.
	stays := [][2]string{
		{"2024-12-01", "2024-12-05"},
		{"2024-12-03", "2024-12-07"}, // conflicts with the first
		{"2024-12-05", "2024-12-08"},
		{"2024-12-07", "2024-12-10"}, // conflicts with the third
		{"2024-12-08", "2024-12-09"},
	}

	var created []string
	for _, s := range stays {
		b := newBooking("room-1", s[0], s[1])
		if err := db.CreateBookingWithLock(ctx, b); err != nil {
			var conflict *ConflictError
			require.True(t, errors.As(err, &conflict))
			continue
		}
		created = append(created, b.ID)
	}
	require.NotEmpty(t, created)

	_, _, err := db.CancelBooking(ctx, created[0])
	require.NoError(t, err)

	// Re-book the freed interval.
	require.NoError(t, db.CreateBookingWithLock(ctx, newBooking("room-1", "2024-12-01", "2024-12-05")))

	bookings, err := db.GetBookingsByRoom(ctx, "room-1")
	require.NoError(t, err)

	var active []models.Booking
	for _, b := range bookings {
		if b.IsActive {
			active = append(active, b)
		}
	}

	for i := range active {
		for j := i + 1; j < len(active); j++ {
			a := interval.Range{Start: active[i].CheckIn, End: active[i].CheckOut}
			b := interval.Range{Start: active[j].CheckIn, End: active[j].CheckOut}
			assert.False(t, a.Overlaps(b),
				"active bookings %s and %s overlap", active[i].ID, active[j].ID)
		}
	}
}
