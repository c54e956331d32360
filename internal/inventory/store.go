// Package inventory provides the SQLite-backed room inventory and booking store.
package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/models"
)

var (
	// ErrRoomNotFound is returned when a room number does not exist.
	ErrRoomNotFound = errors.New("room not found")
	// ErrRoomOccupied is returned when booking a room that is already occupied.
	ErrRoomOccupied = errors.New("room already occupied")
)

// BookedHook is invoked after a booking transaction commits. Failures in the
// hook do not affect the booking.
type BookedHook func(result *models.BookingResult)

// Store manages rooms and bookings in SQLite.
type Store struct {
	db       *sql.DB
	logger   *zap.Logger
	onBooked BookedHook
}

// NewStore opens or creates the hotel database at dbPath, initializes the
// schema, and seeds the room catalog if the rooms table is empty.
func NewStore(dbPath string, logger *zap.Logger) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	s := &Store{db: db, logger: logger}
	if err := s.seedRooms(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to seed rooms: %w", err)
	}
	return s, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS rooms (
		room_id INTEGER PRIMARY KEY AUTOINCREMENT,
		room_number INTEGER NOT NULL UNIQUE,
		room_type TEXT NOT NULL,
		price_min REAL NOT NULL,
		price_max REAL NOT NULL,
		is_occupied INTEGER NOT NULL DEFAULT 0,
		guest_name TEXT NOT NULL DEFAULT '',
		check_in_date TEXT NOT NULL DEFAULT '',
		check_out_date TEXT NOT NULL DEFAULT '',
		special_occasion TEXT NOT NULL DEFAULT '',
		discount_percentage REAL NOT NULL DEFAULT 0,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_rooms_type ON rooms(room_type);
	CREATE INDEX IF NOT EXISTS idx_rooms_occupied ON rooms(is_occupied);

	CREATE TABLE IF NOT EXISTS bookings (
		booking_id INTEGER PRIMARY KEY AUTOINCREMENT,
		room_id INTEGER NOT NULL,
		guest_name TEXT NOT NULL,
		check_in_date TEXT NOT NULL,
		check_out_date TEXT NOT NULL,
		total_amount REAL NOT NULL,
		discount_amount REAL NOT NULL DEFAULT 0,
		special_occasion TEXT NOT NULL DEFAULT '',
		booking_date TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (room_id) REFERENCES rooms(room_id)
	);

	CREATE INDEX IF NOT EXISTS idx_bookings_room_id ON bookings(room_id);
	`
	_, err := db.Exec(schema)
	return err
}

// roomTypeSpec describes one entry in the seed catalog.
type roomTypeSpec struct {
	name     string
	priceMin float64
	priceMax float64
}

// seedCatalog lists the room types created on first run, three rooms each.
var seedCatalog = []roomTypeSpec{
	{"Normal", 50, 80},
	{"Couple", 80, 120},
	{"2 Beds", 100, 150},
	{"4 Beds", 150, 200},
	{"Queen Size", 120, 180},
	{"Honeymoon", 200, 300},
	{"Deluxe Suite", 250, 400},
	{"Luxury", 350, 600},
}

const roomsPerType = 3

func (s *Store) seedRooms() error {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM rooms").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO rooms (room_number, room_type, price_min, price_max) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	number := 101
	for _, spec := range seedCatalog {
		for i := 0; i < roomsPerType; i++ {
			if _, err := stmt.Exec(number, spec.name, spec.priceMin, spec.priceMax); err != nil {
				return err
			}
			number++
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	s.logger.Info("seeded room catalog",
		zap.Int("room_types", len(seedCatalog)),
		zap.Int("rooms", len(seedCatalog)*roomsPerType))
	return nil
}

// OnBooked registers a hook called after each successful booking commit.
func (s *Store) OnBooked(hook BookedHook) {
	s.onBooked = hook
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

const roomColumns = `room_id, room_number, room_type, price_min, price_max, is_occupied,
	guest_name, check_in_date, check_out_date, special_occasion, discount_percentage, created_at`

func scanRoom(scanner interface{ Scan(...interface{}) error }) (*models.Room, error) {
	var r models.Room
	err := scanner.Scan(&r.ID, &r.Number, &r.Type, &r.PriceFloor, &r.PriceCeiling,
		&r.Occupied, &r.GuestName, &r.CheckIn, &r.CheckOut, &r.Occasion,
		&r.DiscountPercent, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRoom returns the room with the given ID.
func (s *Store) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE room_id = ?`, id)
	room, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

// ListRooms returns all rooms ordered by room number.
func (s *Store) ListRooms(ctx context.Context) ([]*models.Room, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+roomColumns+` FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRooms(rows)
}

// ListAvailable returns unoccupied rooms, optionally filtered by room type.
func (s *Store) ListAvailable(ctx context.Context, roomType string) ([]*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE is_occupied = 0`
	args := []interface{}{}
	if roomType != "" {
		query += ` AND LOWER(room_type) = LOWER(?)`
		args = append(args, roomType)
	}
	query += ` ORDER BY room_number`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectRooms(rows)
}

func collectRooms(rows *sql.Rows) ([]*models.Room, error) {
	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// ListRoomTypes returns per-type availability and price ranges.
func (s *Store) ListRoomTypes(ctx context.Context) ([]*models.RoomTypeSummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT room_type, MIN(price_min), MAX(price_max),
		       COUNT(*) AS total,
		       SUM(CASE WHEN is_occupied = 0 THEN 1 ELSE 0 END) AS available
		FROM rooms
		GROUP BY room_type
		ORDER BY MIN(price_min)`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*models.RoomTypeSummary
	for rows.Next() {
		var ts models.RoomTypeSummary
		if err := rows.Scan(&ts.Type, &ts.PriceFloor, &ts.PriceCeiling, &ts.Total, &ts.Available); err != nil {
			return nil, err
		}
		summaries = append(summaries, &ts)
	}
	return summaries, rows.Err()
}

// Summary returns an occupancy snapshot with per-type breakdowns.
func (s *Store) Summary(ctx context.Context) (*models.InventorySummary, error) {
	var sum models.InventorySummary
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       SUM(CASE WHEN is_occupied = 1 THEN 1 ELSE 0 END),
		       SUM(CASE WHEN is_occupied = 0 THEN 1 ELSE 0 END)
		FROM rooms`).Scan(&sum.TotalRooms, &sum.Occupied, &sum.Available)
	if err != nil {
		return nil, err
	}
	if sum.TotalRooms > 0 {
		sum.OccupancyRate = float64(sum.Occupied) / float64(sum.TotalRooms) * 100
	}

	types, err := s.ListRoomTypes(ctx)
	if err != nil {
		return nil, err
	}
	for _, ts := range types {
		sum.RoomTypes = append(sum.RoomTypes, *ts)
	}
	return &sum, nil
}

// SuggestForOccasion returns up to three vacant room types within budget,
// cheapest first. A budget of 0 means unlimited.
func (s *Store) SuggestForOccasion(ctx context.Context, occasion string, budget float64) ([]*models.RoomSuggestion, error) {
	types, err := s.ListRoomTypes(ctx)
	if err != nil {
		return nil, err
	}

	var suggestions []*models.RoomSuggestion
	for _, ts := range types {
		if ts.Available == 0 {
			continue
		}
		if budget > 0 && ts.PriceCeiling > budget {
			continue
		}
		suggestions = append(suggestions, &models.RoomSuggestion{
			Type:         ts.Type,
			PriceCeiling: ts.PriceCeiling,
			Available:    ts.Available,
			SuitableFor:  occasion,
		})
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].PriceCeiling < suggestions[j].PriceCeiling
	})
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions, nil
}

// ListBookings returns the booking ledger joined with room numbers, newest first.
func (s *Store) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.booking_id, b.room_id, r.room_number, b.guest_name, b.check_in_date,
		       b.check_out_date, b.total_amount, b.discount_amount, b.special_occasion,
		       b.booking_date
		FROM bookings b
		JOIN rooms r ON b.room_id = r.room_id
		ORDER BY b.booking_date DESC, b.booking_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.RoomID, &b.RoomNumber, &b.GuestName, &b.CheckIn,
			&b.CheckOut, &b.FinalPrice, &b.DiscountAmount, &b.Occasion, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}

