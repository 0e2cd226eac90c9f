package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"hotelier/internal/models"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
)

// DB is the authoritative booking store. It is the only writer of
// booking state; all mutations for one room are serialized through
// lockRoom so a conflict check and the following insert are atomic.
type DB struct {
	db        *sql.DB
	logger    zerolog.Logger
	roomLocks sync.Map // map[string]*sync.Mutex
}

func NewDB(path string, logger *zerolog.Logger) (*DB, error) {
	if path != ":memory:" {
		// Создаем директорию для БД, если её нет
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows one writer at a time; a single connection avoids
	// SQLITE_BUSY under concurrent mutations.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	var dbLogger zerolog.Logger
	if logger != nil {
		dbLogger = logger.With().Str("component", "database").Logger()
	}
	dbLogger.Info().Str("path", path).Msg("database initialized")

	return &DB{db: db, logger: dbLogger}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS hotels (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            address TEXT NOT NULL,
            description TEXT
        )`,
		`CREATE TABLE IF NOT EXISTS rooms (
            id TEXT PRIMARY KEY,
            hotel_id TEXT NOT NULL,
            number TEXT NOT NULL,
            type TEXT NOT NULL,
            price REAL NOT NULL DEFAULT 0,
            FOREIGN KEY (hotel_id) REFERENCES hotels(id)
        )`,
		`CREATE TABLE IF NOT EXISTS bookings (
            id TEXT PRIMARY KEY,
            room_id TEXT NOT NULL,
            guest_name TEXT NOT NULL,
            guest_email TEXT NOT NULL,
            check_in TEXT NOT NULL,
            check_out TEXT NOT NULL,
            is_active BOOLEAN NOT NULL DEFAULT 1,
            created_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE INDEX IF NOT EXISTS idx_rooms_hotel_id ON rooms(hotel_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_room_id ON bookings(room_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_is_active ON bookings(is_active)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_check_in ON bookings(check_in)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("error executing query %s: %w", query, err)
		}
	}
	return nil
}

// SeedHotels upserts the configured hotels and their rooms. Bookings are
// never touched: their lifetime is independent of hotel/room seeding.
func (db *DB) SeedHotels(ctx context.Context, hotels []models.Hotel) error {
	tx, err := db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const hotelQuery = `INSERT INTO hotels (id, name, address, description) VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            name = excluded.name,
            address = excluded.address,
            description = excluded.description`
	const roomQuery = `INSERT INTO rooms (id, hotel_id, number, type, price) VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            hotel_id = excluded.hotel_id,
            number = excluded.number,
            type = excluded.type,
            price = excluded.price`

	for _, hotel := range hotels {
		if _, err := tx.ExecContext(ctx, hotelQuery, hotel.ID, hotel.Name, hotel.Address, hotel.Description); err != nil {
			return fmt.Errorf("failed to seed hotel %s: %w", hotel.ID, err)
		}
		for _, room := range hotel.Rooms {
			if _, err := tx.ExecContext(ctx, roomQuery, room.ID, hotel.ID, room.Number, room.Type, room.Price); err != nil {
				return fmt.Errorf("failed to seed room %s: %w", room.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	db.logger.Info().Int("hotels", len(hotels)).Msg("hotels seeded")
	return nil
}

// lockRoom returns the mutex guarding mutations for one room. Locks are
// created on first use and kept for the process lifetime; the set of
// rooms is small and seeded at startup.
func (db *DB) lockRoom(roomID string) *sync.Mutex {
	if v, ok := db.roomLocks.Load(roomID); ok {
		return v.(*sync.Mutex)
	}
	mu := &sync.Mutex{}
	actual, _ := db.roomLocks.LoadOrStore(roomID, mu)
	return actual.(*sync.Mutex)
}

func (db *DB) Close() error {
	return db.db.Close()
}
