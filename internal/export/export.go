// Package export writes the room inventory and booking ledger to an Excel workbook.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/models"
)

// Source provides the data written to the workbook.
type Source interface {
	ListRooms(ctx context.Context) ([]*models.Room, error)
	ListBookings(ctx context.Context) ([]*models.Booking, error)
}

// Exporter writes booking data to an xlsx workbook at a fixed path.
type Exporter struct {
	source Source
	path   string
	logger *zap.Logger
}

// NewExporter creates an Exporter writing to path.
func NewExporter(source Source, path string, logger *zap.Logger) *Exporter {
	return &Exporter{source: source, path: path, logger: logger}
}

// Export writes a workbook with "Rooms" and "Bookings" sheets. The file is
// written to a temp path and renamed so readers never see a partial workbook.
func (e *Exporter) Export(ctx context.Context) error {
	rooms, err := e.source.ListRooms(ctx)
	if err != nil {
		return fmt.Errorf("failed to list rooms: %w", err)
	}
	bookings, err := e.source.ListBookings(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bookings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeRoomsSheet(f, rooms); err != nil {
		return err
	}
	if err := writeBookingsSheet(f, bookings); err != nil {
		return err
	}

	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	tmp := e.path + ".tmp"
	if err := f.SaveAs(tmp); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	if err := os.Rename(tmp, e.path); err != nil {
		return fmt.Errorf("failed to move workbook into place: %w", err)
	}

	e.logger.Info("exported booking data",
		zap.String("path", e.path),
		zap.Int("rooms", len(rooms)),
		zap.Int("bookings", len(bookings)))
	return nil
}

// OnBooked satisfies the inventory post-booking hook. It exports in the
// background; failures are logged and never surface to the booking caller.
func (e *Exporter) OnBooked(_ *models.BookingResult) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := e.Export(ctx); err != nil {
			e.logger.Error("background export failed", zap.Error(err))
		}
	}()
}

func writeRoomsSheet(f *excelize.File, rooms []*models.Room) error {
	const sheet = "Rooms"
	f.SetSheetName("Sheet1", sheet)

	header := []interface{}{"room_number", "room_type", "price_min", "price_max",
		"is_occupied", "guest_name", "check_in_date", "check_out_date",
		"special_occasion", "discount_percentage", "created_at"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range rooms {
		row := []interface{}{r.Number, r.Type, r.PriceFloor, r.PriceCeiling,
			r.Occupied, r.GuestName, r.CheckIn, r.CheckOut,
			r.Occasion, r.DiscountPercent, r.CreatedAt.Format(time.RFC3339)}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeBookingsSheet(f *excelize.File, bookings []*models.Booking) error {
	const sheet = "Bookings"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	header := []interface{}{"booking_id", "room_number", "guest_name",
		"check_in_date", "check_out_date", "total_amount", "discount_amount",
		"special_occasion", "booking_date"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, b := range bookings {
		row := []interface{}{b.ID, b.RoomNumber, b.GuestName,
			b.CheckIn, b.CheckOut, b.FinalPrice, b.DiscountAmount,
			b.Occasion, b.CreatedAt.Format(time.RFC3339)}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
