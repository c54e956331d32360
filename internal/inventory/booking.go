package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/discount"
	"github.com/grandplaza/concierge/internal/models"
)

// Book reserves the room identified by req.RoomID. The final price starts from
// the room's ceiling rate, applies the occasion discount, and is clamped to the
// room's floor rate; the recorded discount percent always reflects the price
// actually charged.
//
// The room check, room update, and booking insert run in one transaction with a
// guarded UPDATE so two concurrent bookings for the same room cannot both
// succeed.
func (s *Store) Book(ctx context.Context, req *models.BookingRequest) (*models.BookingResult, error) {
	if strings.TrimSpace(req.GuestName) == "" {
		return nil, fmt.Errorf("guest name is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM rooms WHERE room_id = ?`, req.RoomID)
	room, err := scanRoom(row)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	if room.Occupied {
		return nil, ErrRoomOccupied
	}

	percent := discount.Percent(req.Occasion)
	price := room.PriceCeiling - room.PriceCeiling*percent/100
	if price < room.PriceFloor {
		price = room.PriceFloor
		percent = (room.PriceCeiling - price) / room.PriceCeiling * 100
	}
	amount := room.PriceCeiling - price

	res, err := tx.ExecContext(ctx, `
		UPDATE rooms SET is_occupied = 1, guest_name = ?, check_in_date = ?,
		       check_out_date = ?, special_occasion = ?, discount_percentage = ?
		WHERE room_id = ? AND is_occupied = 0`,
		req.GuestName, req.CheckIn, req.CheckOut, req.Occasion, percent, room.ID)
	if err != nil {
		return nil, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrRoomOccupied
	}

	insert, err := tx.ExecContext(ctx, `
		INSERT INTO bookings (room_id, guest_name, check_in_date, check_out_date,
		       total_amount, discount_amount, special_occasion)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		room.ID, req.GuestName, req.CheckIn, req.CheckOut, price, amount, req.Occasion)
	if err != nil {
		return nil, err
	}
	bookingID, err := insert.LastInsertId()
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	result := &models.BookingResult{
		BookingID:       bookingID,
		RoomID:          room.ID,
		FinalPrice:      price,
		DiscountAmount:  amount,
		DiscountPercent: percent,
	}

	s.logger.Info("booked room",
		zap.Int64("room_id", room.ID),
		zap.Int("room_number", room.Number),
		zap.String("room_type", room.Type),
		zap.String("guest", req.GuestName),
		zap.Float64("final_price", price),
		zap.Float64("discount_percent", percent))

	if s.onBooked != nil {
		s.onBooked(result)
	}
	return result, nil
}
