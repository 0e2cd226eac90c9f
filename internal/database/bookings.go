package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hotelier/internal/interval"
	"hotelier/internal/models"

	"github.com/google/uuid"
)

const bookingColumns = `id, room_id, guest_name, guest_email, check_in, check_out, is_active, created_at`

// Active bookings whose [check_in, check_out) intersects [?, ?).
// ISO date strings compare correctly as text, so the half-open overlap
// test is plain string comparison: check_in < end AND start < check_out.
const conflictWhere = `room_id = ? AND is_active = 1 AND check_in < ? AND ? < check_out`

// CreateBookingWithLock validates the stay against existing active
// bookings and inserts it, atomically with respect to other mutations on
// the same room. The room mutex plus a single transaction guarantee that
// two concurrent creates never both observe "no conflict".
func (db *DB) CreateBookingWithLock(ctx context.Context, booking *models.Booking) error {
	if _, err := db.GetRoom(ctx, booking.RoomID); err != nil {
		return err
	}

	mu := db.lockRoom(booking.RoomID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// 1. Conflict check inside the transaction
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + conflictWhere + ` ORDER BY check_in, created_at`
	rows, err := tx.QueryContext(ctx, query,
		booking.RoomID,
		booking.CheckOut.Format(interval.DateLayout),
		booking.CheckIn.Format(interval.DateLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to check conflicts in tx: %w", err)
	}
	conflicts, err := scanBookings(rows)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return &ConflictError{RoomID: booking.RoomID, Conflicting: conflicts}
	}

	// 2. Insert the booking
	now := time.Now().UTC()
	id := uuid.NewString()
	queryInsert := `INSERT INTO bookings (id, room_id, guest_name, guest_email, check_in, check_out, is_active, created_at)
	                VALUES (?, ?, ?, ?, ?, ?, 1, ?)`
	_, err = tx.ExecContext(ctx, queryInsert,
		id,
		booking.RoomID,
		booking.GuestName,
		booking.GuestEmail,
		booking.CheckIn.Format(interval.DateLayout),
		booking.CheckOut.Format(interval.DateLayout),
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking in tx: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking: %w", err)
	}

	booking.ID = id
	booking.IsActive = true
	booking.CreatedAt = now

	return nil
}

// CancelBooking flips the booking to cancelled and returns the updated
// row. Cancelling an already cancelled booking is not an error; the
// booking is returned unchanged with changed=false. Cancellation is
// terminal.
func (db *DB) CancelBooking(ctx context.Context, id string) (*models.Booking, bool, error) {
	booking, err := db.GetBooking(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !booking.IsActive {
		return booking, false, nil
	}

	// Serialized with creates on the same room so a cancel cannot
	// interleave with a conflict-check-then-insert.
	mu := db.lockRoom(booking.RoomID)
	mu.Lock()
	defer mu.Unlock()

	result, err := db.db.ExecContext(ctx, `UPDATE bookings SET is_active = 0 WHERE id = ? AND is_active = 1`, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to cancel booking: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("failed to cancel booking: %w", err)
	}

	booking, err = db.GetBooking(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return booking, affected > 0, nil
}

// GetBooking returns a booking by id.
func (db *DB) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(db.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

// GetBookingsByRoom returns all bookings for the room, cancelled ones
// included, ordered by check-in then creation time.
func (db *DB) GetBookingsByRoom(ctx context.Context, roomID string) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE room_id = ? ORDER BY check_in, created_at`
	rows, err := db.db.QueryContext(ctx, query, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bookings for room %s: %w", roomID, err)
	}
	return scanBookings(rows)
}

// FindConflicts returns the active bookings on the room whose stays
// overlap rng. An empty result means the range is available.
func (db *DB) FindConflicts(ctx context.Context, roomID string, rng interval.Range) ([]models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + conflictWhere + ` ORDER BY check_in, created_at`
	rows, err := db.db.QueryContext(ctx, query,
		roomID,
		rng.End.Format(interval.DateLayout),
		rng.Start.Format(interval.DateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find conflicts for room %s: %w", roomID, err)
	}
	return scanBookings(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*models.Booking, error) {
	var b models.Booking
	var checkIn, checkOut string
	err := row.Scan(&b.ID, &b.RoomID, &b.GuestName, &b.GuestEmail, &checkIn, &checkOut, &b.IsActive, &b.CreatedAt)
	if err != nil {
		return nil, err
	}

	if b.CheckIn, err = interval.ParseDate(checkIn); err != nil {
		return nil, fmt.Errorf("failed to parse check_in %s: %w", checkIn, err)
	}
	if b.CheckOut, err = interval.ParseDate(checkOut); err != nil {
		return nil, fmt.Errorf("failed to parse check_out %s: %w", checkOut, err)
	}
	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]models.Booking, error) {
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}
