package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotelier/internal/models"
)

// GetHotels returns all hotels with their rooms nested, ordered by name.
func (db *DB) GetHotels(ctx context.Context) ([]models.Hotel, error) {
	query := `SELECT id, name, address, COALESCE(description, '') FROM hotels ORDER BY name, id`
	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get hotels: %w", err)
	}
	defer rows.Close()

	var hotels []models.Hotel
	for rows.Next() {
		var h models.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Address, &h.Description); err != nil {
			return nil, fmt.Errorf("failed to scan hotel: %w", err)
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range hotels {
		rooms, err := db.GetRoomsByHotel(ctx, hotels[i].ID)
		if err != nil {
			return nil, err
		}
		hotels[i].Rooms = rooms
	}

	return hotels, nil
}

// GetHotel returns one hotel with its rooms nested.
func (db *DB) GetHotel(ctx context.Context, id string) (*models.Hotel, error) {
	query := `SELECT id, name, address, COALESCE(description, '') FROM hotels WHERE id = ?`

	var h models.Hotel
	err := db.db.QueryRowContext(ctx, query, id).Scan(&h.ID, &h.Name, &h.Address, &h.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrHotelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}

	rooms, err := db.GetRoomsByHotel(ctx, h.ID)
	if err != nil {
		return nil, err
	}
	h.Rooms = rooms

	return &h, nil
}

// GetRoomsByHotel returns the hotel's rooms ordered by room number.
func (db *DB) GetRoomsByHotel(ctx context.Context, hotelID string) ([]models.Room, error) {
	query := `SELECT id, hotel_id, number, type, price FROM rooms WHERE hotel_id = ? ORDER BY number, id`
	rows, err := db.db.QueryContext(ctx, query, hotelID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms for hotel %s: %w", hotelID, err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.ID, &r.HotelID, &r.Number, &r.Type, &r.Price); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// GetRooms returns every room with its hotel back-reference populated.
func (db *DB) GetRooms(ctx context.Context) ([]models.Room, error) {
	query := `SELECT r.id, r.hotel_id, r.number, r.type, r.price,
	                 h.id, h.name, h.address, COALESCE(h.description, '')
              FROM rooms r
              JOIN hotels h ON h.id = r.hotel_id
              ORDER BY h.name, r.number, r.id`

	rows, err := db.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var r models.Room
		var h models.Hotel
		err := rows.Scan(&r.ID, &r.HotelID, &r.Number, &r.Type, &r.Price,
			&h.ID, &h.Name, &h.Address, &h.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		r.Hotel = &h
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// GetRoom returns one room without the hotel back-reference.
func (db *DB) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	query := `SELECT id, hotel_id, number, type, price FROM rooms WHERE id = ?`

	var r models.Room
	err := db.db.QueryRowContext(ctx, query, id).Scan(&r.ID, &r.HotelID, &r.Number, &r.Type, &r.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return &r, nil
}
