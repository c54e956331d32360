package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/grandplaza/concierge/internal/models"
)

type fakeSource struct {
	rooms    []*models.Room
	bookings []*models.Booking
}

func (f *fakeSource) ListRooms(context.Context) ([]*models.Room, error)       { return f.rooms, nil }
func (f *fakeSource) ListBookings(context.Context) ([]*models.Booking, error) { return f.bookings, nil }

func TestExportRoundTrip(t *testing.T) {
	now := time.Now()
	source := &fakeSource{
		rooms: []*models.Room{
			{ID: 1, Number: 101, Type: "Normal", PriceFloor: 50, PriceCeiling: 80, CreatedAt: now},
			{ID: 2, Number: 102, Type: "Normal", PriceFloor: 50, PriceCeiling: 80,
				Occupied: true, GuestName: "Alice", CheckIn: "2026-09-01",
				CheckOut: "2026-09-05", Occasion: "birthday", DiscountPercent: 10, CreatedAt: now},
		},
		bookings: []*models.Booking{
			{ID: 1, RoomID: 2, RoomNumber: 102, GuestName: "Alice",
				CheckIn: "2026-09-01", CheckOut: "2026-09-05",
				FinalPrice: 72, DiscountAmount: 8, Occasion: "birthday", CreatedAt: now},
		},
	}

	path := filepath.Join(t.TempDir(), "bookings.xlsx")
	exporter := NewExporter(source, path, zap.NewNop())
	if err := exporter.Export(context.Background()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Rooms")
	if err != nil {
		t.Fatalf("GetRows(Rooms): %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("Rooms sheet rows = %d, want header + 2", len(rows))
	}
	if rows[0][0] != "room_number" {
		t.Errorf("unexpected Rooms header: %v", rows[0])
	}
	if rows[2][5] != "Alice" {
		t.Errorf("guest name cell = %q, want Alice", rows[2][5])
	}

	rows, err = f.GetRows("Bookings")
	if err != nil {
		t.Fatalf("GetRows(Bookings): %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Bookings sheet rows = %d, want header + 1", len(rows))
	}
	if rows[1][1] != "102" {
		t.Errorf("room number cell = %q, want 102", rows[1][1])
	}
	if rows[1][5] != "72" {
		t.Errorf("total amount cell = %q, want 72", rows[1][5])
	}
}

func TestExportEmptyLedger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookings.xlsx")
	exporter := NewExporter(&fakeSource{}, path, zap.NewNop())
	if err := exporter.Export(context.Background()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	for _, sheet := range []string{"Rooms", "Bookings"} {
		rows, err := f.GetRows(sheet)
		if err != nil {
			t.Fatalf("GetRows(%s): %v", sheet, err)
		}
		if len(rows) != 1 {
			t.Errorf("%s sheet rows = %d, want header only", sheet, len(rows))
		}
	}
}
